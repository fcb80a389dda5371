// Package language derives language tags from media stream metadata and maps
// them to human-readable names.
//
// Tags follow the loose form ffprobe reports: a two or three letter code,
// optionally followed by a region or variant suffix ("eng", "pt-BR",
// "zh_Hant"). Anything else collapses to the undetermined tag "und".
package language
