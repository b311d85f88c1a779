package config

// DefaultExtensions are the audio file extensions considered part of a
// Rekordbox library.
var DefaultExtensions = []string{"mp3", "wav", "aiff", "aif", "flac", "m4a"}

// DefaultQuarantineDirName is the flat holding directory created under the
// first scan root.
const DefaultQuarantineDirName = "_Rekordbox_Orphans"

// DefaultManifestName is the move-log file name inside the quarantine
// directory.
const DefaultManifestName = "orphans_manifest.jsonl"

// DefaultIgnoreNames are platform metadata files excluded from scans.
var DefaultIgnoreNames = []string{".DS_Store", "Thumbs.db", "desktop.ini"}

// DefaultIgnorePrefixes are base-name prefixes excluded from scans
// (AppleDouble resource forks).
var DefaultIgnorePrefixes = []string{"._"}
