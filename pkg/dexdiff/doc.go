// Package dexdiff reports the classes a device's DEX database adds on top of a
// baseline database, typically one built from the matching AOSP release.
package dexdiff
