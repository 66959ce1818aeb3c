// Package cli provides the submit command-line client.
//
// The form is either loaded from a JSON draft (the same shape the server
// accepts, without images) or filled in interactively, one prompt per
// field. Image paths given on the command line are attached as the logo
// and screenshots, then the form is submitted with client.Submitter and
// the confirmation is printed.
package cli
