// Package mmfile provides read-only memory mapping of OAT files, falling back
// to a full read where mmap is not available.
package mmfile
