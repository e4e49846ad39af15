// Command imgscan runs the image browser's operations from a shell.
//
// Usage:
//
//	imgscan scan <dir>                     images in a folder
//	imgscan adjacent <file>                images next to a file
//	imgscan tree <dir> [--depth N]         directory tree
//	imgscan meta <file>                    dimensions, size and format
//	imgscan thumb <file> -o out.jpg [--size N]
//	imgscan watch <dir> [--count N]        change events until interrupted
//	imgscan pick [--folder] [--path P]     terminal picker
//
// Output is indented JSON on stdout. Errors are printed to stderr with
// their code, for example
//
//	Error [NOT_FOUND]: path does not exist: /photos/missing
//
// and the command exits with status 1.
package main
