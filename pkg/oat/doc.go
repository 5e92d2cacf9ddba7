// Package oat extracts embedded DEX images from Android OAT files.
//
// An OAT file is an ELF shared object. The "oatdata" symbol marks an OAT
// header followed by one sub-header (OatDexFile) per embedded DEX image. Parse
// resolves that region, decodes the version dependent header, walks the
// sub-header chain and returns an immutable *File. DEX images are carved on
// demand with File.Carve, File.DexBytes or File.DexReader.
//
//	f, err := oat.Open("boot.oat", oat.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//	for _, h := range f.DexHeaders {
//	    out, _ := os.Create(filepath.Base(h.Location()))
//	    _, err := f.Carve(out, h)
//	    ...
//	}
//
// Parsing never guesses: a structurally inconsistent chain fails with one of
// the sentinels in pkg/types and no *File is returned. Retrying with
// Options.SamsungMode toggled is the caller's decision.
package oat
