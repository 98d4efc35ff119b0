// Package security provides input validation for the paths and names the
// builder touches on disk: config/template paths, service names used to
// locate application directories, and secret store file permissions.
package security
