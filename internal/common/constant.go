package common

// ApplyPath is the route the collector posts submissions to.
const ApplyPath = "/api/apply"

// ImageContentType is the content type every uploaded asset is stored with.
const ImageContentType = "image/png"
