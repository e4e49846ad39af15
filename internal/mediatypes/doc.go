// Package mediatypes classifies files as supported images.
//
// This package is a dependency-free foundation that the scanner, tree
// builder, metadata extractor and HTTP layer import without creating
// cycles. It contains the extension whitelist and pure helpers; nothing in
// it touches the filesystem.
//
// # Supported Formats
//
// jpg, jpeg, png, gif, bmp, webp and svg. Matching is case-insensitive:
//
//	mediatypes.IsSupportedImage("/photos/IMG_0001.JPG") // true
//	mediatypes.IsSupportedImage("/photos/notes.txt")    // false
//	mediatypes.IsSupportedImage("/photos/README")       // false
//
// # Format Tags
//
// FormatTag canonicalizes an extension or decoder name into the tag reported
// in image metadata:
//
//	mediatypes.FormatTag("JPG") // "jpeg"
//	mediatypes.FormatTag("png") // "png"
//
// svg is the only vector format; its dimensions are never read here.
package mediatypes
