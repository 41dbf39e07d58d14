// Package imaging decodes image files into in-memory pixel surfaces and
// normalizes their pixel format for upload.
//
// Supported encodings are PNG, JPEG and GIF from the standard library and
// BMP, TIFF and WebP from golang.org/x/image. ReadInfo extracts dimensions
// and EXIF fields without decoding pixels.
package imaging
