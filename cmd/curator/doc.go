// Command curator organizes a directory of media files into a normalized
// Movies/Shows library layout, optionally downmixing audio through ffmpeg.
package main
