// Package export writes the anonymised research bundle as JSON or as an
// XLSX workbook.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abhisek/quizionix/internal/usermodel"
	"github.com/abhisek/quizionix/internal/zone"
)

// SchemaVersion is the version of Bundle. Fields are only ever added, so
// readers accept any bundle with the same major version.
const SchemaVersion = "1.0"

// Format names an export encoding.
type Format string

const (
	JSON Format = "json"
	XLSX Format = "xlsx"
)

// ParseFormat resolves a --format value, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, XLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json or xlsx)", s)
	}
}

// Bundle is everything exported for one user. It carries the hashed user
// id only; session ids are random and telemetry events hold no personal
// fields.
type Bundle struct {
	SchemaVersion string                        `json:"schemaVersion"`
	ExportedAt    time.Time                     `json:"exportedAt"`
	UserIDHash    string                        `json:"userIdHash"`
	Progression   usermodel.ProgressionSnapshot `json:"progression"`
	Signals       map[string]usermodel.Signals  `json:"signals"`
	Sessions      []usermodel.SessionSummary    `json:"sessions"`
	Telemetry     []usermodel.TelemetryEvent    `json:"telemetry"`
	Zone          *zone.ExportBundle            `json:"zone,omitempty"`
}

// Build collects the bundle for the model's current user. z may be nil
// when no zone state exists.
func Build(users *usermodel.Model, z *zone.Engine, now time.Time) *Bundle {
	b := &Bundle{
		SchemaVersion: SchemaVersion,
		ExportedAt:    now.UTC(),
		UserIDHash:    usermodel.HashUserID(users.UserID()),
		Progression:   users.Progression(),
		Signals:       make(map[string]usermodel.Signals),
		Sessions:      users.Sessions(),
		Telemetry:     users.TelemetryEvents(usermodel.TelemetryLimit),
	}
	for _, s := range users.Subjects() {
		b.Signals[s] = users.ResearchSignals(s)
	}
	if b.Sessions == nil {
		b.Sessions = []usermodel.SessionSummary{}
	}
	if b.Telemetry == nil {
		b.Telemetry = []usermodel.TelemetryEvent{}
	}
	if z != nil {
		zb := z.Export()
		b.Zone = &zb
	}
	return b
}

// ErrMissingVersion is returned by ReadJSON for a bundle without a
// schemaVersion.
var ErrMissingVersion = errors.New("export bundle has no schema version")

// VersionError reports a bundle written with an incompatible major schema
// version.
type VersionError struct {
	Field   string
	Version string
	Want    string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s %s is not compatible with %s", e.Field, e.Version, e.Want)
}

// Compatible reports whether version shares its major version with want.
func Compatible(version, want string) bool {
	v := "v" + strings.TrimPrefix(version, "v")
	if !semver.IsValid(v) {
		return false
	}
	return semver.Major(v) == semver.Major("v"+want)
}

// WriteJSON encodes b as indented JSON.
func WriteJSON(w io.Writer, b *Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode export bundle: %w", err)
	}
	return nil
}

// ReadJSON decodes a bundle written by WriteJSON, rejecting newer major
// versions of the bundle or of its zone section. Unknown fields are
// ignored.
func ReadJSON(r io.Reader) (*Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode export bundle: %w", err)
	}
	if b.SchemaVersion == "" {
		return nil, ErrMissingVersion
	}
	if !Compatible(b.SchemaVersion, SchemaVersion) {
		return nil, &VersionError{Field: "schemaVersion", Version: b.SchemaVersion, Want: SchemaVersion}
	}
	if b.Zone != nil && !Compatible(b.Zone.SchemaVersion, zone.ExportSchemaVersion) {
		return nil, &VersionError{Field: "zone.schemaVersion", Version: b.Zone.SchemaVersion, Want: zone.ExportSchemaVersion}
	}
	return &b, nil
}

// Write encodes b in format f.
func Write(w io.Writer, f Format, b *Bundle) error {
	switch f {
	case JSON:
		return WriteJSON(w, b)
	case XLSX:
		return WriteXLSX(w, b)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}
