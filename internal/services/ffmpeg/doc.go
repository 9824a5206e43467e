// Package ffmpeg wraps the ffmpeg command line for the audio downmix step:
// video and subtitle streams are copied untouched while audio is downmixed
// to two-channel FLAC with loudness normalization.
package ffmpeg
