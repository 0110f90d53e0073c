//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// VersionKind tags the provenance of a bullet snapshot.
type VersionKind string

// Version provenance kinds.
const (
	VersionOriginal   VersionKind = "original"
	VersionGenerate   VersionKind = "generate"
	VersionRegenerate VersionKind = "regenerate"
	VersionTailor     VersionKind = "tailor"
)

// Valid reports whether k is a known version kind.
func (k VersionKind) Valid() bool {
	switch k {
	case VersionOriginal, VersionGenerate, VersionRegenerate, VersionTailor:
		return true
	}
	return false
}

// VersionMeta holds display metadata derived from the version kind.
type VersionMeta struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// versionMetaTable mirrors the VERSION_TYPES display table.
var versionMetaTable = map[VersionKind]VersionMeta{
	VersionOriginal:   {Label: "Original Version", Color: "bg-gray-100 text-gray-800"},
	VersionGenerate:   {Label: "Generated", Color: "bg-blue-100 text-blue-800"},
	VersionRegenerate: {Label: "Regenerated", Color: "bg-purple-100 text-purple-800"},
	VersionTailor:     {Label: "Tailored", Color: "bg-green-100 text-green-800"},
}

// MetaFor returns the display metadata for a version kind.
func MetaFor(kind VersionKind) VersionMeta {
	return versionMetaTable[kind]
}

// BulletVersion is one immutable snapshot of generated bullet content.
// Snapshots are ordered newest-first in a history.
type BulletVersion struct {
	ID        int64       `json:"id"`
	Content   Bullets     `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Kind      VersionKind `json:"type"`
	Meta      VersionMeta `json:"metadata"`
}
