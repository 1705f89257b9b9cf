package config

import (
	"encoding/json"
	"fmt"
)

// Manifest is the manifest.json NZBGet 23+ reads to discover an extension,
// its options and its commands.
type Manifest struct {
	Main         string            `json:"main"`
	Name         string            `json:"name"`
	HomePage     string            `json:"homepage"`
	Kind         string            `json:"kind"`
	DisplayName  string            `json:"displayName"`
	Version      string            `json:"version"`
	Author       string            `json:"author"`
	License      string            `json:"license"`
	About        string            `json:"about"`
	QueueEvents  string            `json:"queueEvents"`
	Requirements []string          `json:"requirements"`
	Description  []string          `json:"description"`
	Options      []ManifestOption  `json:"options"`
	Commands     []ManifestCommand `json:"commands"`
	TaskTime     string            `json:"taskTime"`
	Sections     []any             `json:"sections"`
}

// ManifestOption is one entry of Manifest.Options.
type ManifestOption struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Value       string   `json:"value"`
	Description []string `json:"description"`
	Select      []string `json:"select"`
}

// ManifestCommand is one entry of Manifest.Commands.
type ManifestCommand struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Action      string   `json:"action"`
	Description []string `json:"description"`
}

// BuildManifest describes the extension for NZBGet. main is the executable
// name NZBGet should launch.
func BuildManifest(main, version string) Manifest {
	opts := make([]ManifestOption, 0, len(Options))
	for _, o := range Options {
		sel := o.Select
		if sel == nil {
			sel = []string{}
		}
		opts = append(opts, ManifestOption{
			Name:        o.Name,
			DisplayName: o.Name,
			Value:       o.Default,
			Description: o.Description,
			Select:      sel,
		})
	}

	return Manifest{
		Main:         main,
		Name:         "NZBClient",
		Kind:         "QUEUE/POST-PROCESSING",
		DisplayName:  "NZBClient",
		Version:      version,
		Author:       "Digital Tools Ltd",
		License:      "GNU",
		About:        "Sends NZBClient push notifications.",
		QueueEvents:  "NZB_ADDED, NZB_DOWNLOADED, NZB_DELETED",
		Requirements: []string{},
		Description: []string{
			"Sends a NZBClient notification when an NZB is added to or removed from the queue, or when a job is finished.",
		},
		Options: opts,
		Commands: []ManifestCommand{{
			Name:        "Test",
			DisplayName: "Test",
			Action:      "Test Push Notifications",
			Description: []string{"You can test your configuration here."},
		}},
		Sections: []any{},
	}
}

// MarshalManifest renders m as indented JSON.
func MarshalManifest(m Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("config: marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}
