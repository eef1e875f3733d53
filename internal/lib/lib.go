// Package lib groups supporting modules that do not fit strictly into
// other layers. Today that is background job processing (job).
package lib
