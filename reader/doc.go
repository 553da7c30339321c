// Package reader provides file reading and character decoding for
// archive data files.
//
// NOAA archive files are plain text in mixed encodings: most are UTF-8,
// but older submissions are Windows-1252 and carry degree signs,
// plus-minus signs, and accented investigator names as single high
// bytes. The Reader detects which case it is holding and decodes
// accordingly. Replacement characters already embedded in a file, the
// U+FFFD runes seen inside uncertainty columns of legacy files, pass
// through untouched.
//
// # Opening Files
//
// Use [Open] to open a data file for reading:
//
//	r, err := reader.Open("study.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//	lines := r.Lines()
//
// Or use [NewReader] with an existing *os.File, or [NewFromBytes] for
// content already in memory.
//
// # Line Splitting
//
// [Reader.Lines] splits on LF, CRLF, and lone CR line endings, so files
// from any platform produce the same line slice. A UTF-8 byte order
// mark is dropped.
//
// # Scanned Images
//
// [ReadImage] loads a scanned data sheet (PNG, JPEG, GIF, TIFF, or
// BMP); [ScannedImage.ToPNG] re-encodes it for the OCR engine.
package reader
