// Package services holds the submission processing pipeline: decode and
// upload every image asset, render the reviewer notification and dispatch
// it by email.
package services
