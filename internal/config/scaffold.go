package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/event"
)

// EnvConfigPath names the variable that may point at a config file when the
// --config flag is not given.
const EnvConfigPath = "NZBNOTIFY_CONFIG"

// Locate picks the config file to load. An explicit path wins, then
// NZBNOTIFY_CONFIG, then nzbnotify.toml inside NZBGet's script directory if it
// exists. Returns "" when there is no file to load.
func Locate(explicit string, ec event.Context) string {
	if explicit != "" {
		return explicit
	}
	if p := ec.Get(EnvConfigPath); p != "" {
		return p
	}
	if dir := ec.Get(event.KeyScriptDir); dir != "" {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// InitFile writes a default nzbnotify.toml template to the given directory.
func InitFile(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config: %s already exists at %s", FileName, path)
	}

	if err := os.WriteFile(path, []byte(template), 0600); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}

const template = `# nzbnotify.toml: NZBClient notification defaults
# NZBPO_* options passed by NZBGet override every value in this file.

[account]
user_key = ""
app_token = ""

[encryption]
enabled = false
type = "fernet"    # fernet or aes
private_key = ""   # fernet: a Fernet key; aes: any passphrase

[queue]
nzb_added = true
added_priority = "normal"       # low, normal, high
nzb_downloaded = false
downloaded_priority = "normal"
nzb_deleted = true
deleted_priority = "normal"

[post_process]
notify_success = true
success_priority = "normal"
notify_failure = true
failure_priority = "normal"
append_par_unpack = false  # add Par-Status / Unpack-Status lines
file_list = false          # add the files in the destination directory

[delivery]
endpoint = "https://api.nzbclient.app/1/messages.json"
timeout_seconds = 10
`
