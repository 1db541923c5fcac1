// Package decode turns audio files into PCM chunks for the loudness
// analyzer.
//
// Each decoder pushes audio in its native sample format: WAV and AIFF as
// 16-bit or 32-bit integers, MP3 as raw little-endian 16-bit bytes and Ogg
// Vorbis as 32-bit floats, so no format conversion happens outside the
// analyzer.
package decode
