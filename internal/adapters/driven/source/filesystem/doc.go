// Package filesystem reads novel files from local disk and watches
// import folders for new arrivals.
package filesystem
