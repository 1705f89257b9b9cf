// Package config resolves the extension's options from defaults, an optional
// nzbnotify.toml file and the NZBPO_* variables NZBGet passes in.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/event"
)

// FileName is the conventional name of the optional config file.
const FileName = "nzbnotify.toml"

// DefaultEndpoint is the NZBClient push API.
const DefaultEndpoint = "https://api.nzbclient.app/1/messages.json"

// Encryption types accepted by EncryptionType.
const (
	EncryptionFernet = "fernet"
	EncryptionAES    = "aes"
)

// MissingOptionError reports a required extension option that is absent or
// empty. Option is the name shown in NZBGet's settings page.
type MissingOptionError struct {
	Option string
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("Option %s is missing in the configuration file. Please check script settings.", e.Option)
}

// Config is the resolved extension configuration.
type Config struct {
	Account     AccountConfig     `toml:"account"`
	Encryption  EncryptionConfig  `toml:"encryption"`
	Queue       QueueConfig       `toml:"queue"`
	PostProcess PostProcessConfig `toml:"post_process"`
	Delivery    DeliveryConfig    `toml:"delivery"`
}

// AccountConfig holds the NZBClient credentials.
type AccountConfig struct {
	UserKey  string `toml:"user_key"`
	AppToken string `toml:"app_token"`
}

// EncryptionConfig controls message body obfuscation.
type EncryptionConfig struct {
	Enabled    bool   `toml:"enabled"`
	Type       string `toml:"type"` // fernet or aes
	PrivateKey string `toml:"private_key"`
}

// Active reports whether obfuscation should be attempted at all.
func (e EncryptionConfig) Active() bool {
	return e.Enabled && e.PrivateKey != ""
}

// QueueConfig controls queue-event notifications. Priorities are the words
// low, normal or high.
type QueueConfig struct {
	NZBAdded           bool   `toml:"nzb_added"`
	AddedPriority      string `toml:"added_priority"`
	NZBDownloaded      bool   `toml:"nzb_downloaded"`
	DownloadedPriority string `toml:"downloaded_priority"`
	NZBDeleted         bool   `toml:"nzb_deleted"`
	DeletedPriority    string `toml:"deleted_priority"`
}

// PostProcessConfig controls the post-processing notification.
type PostProcessConfig struct {
	NotifySuccess   bool   `toml:"notify_success"`
	SuccessPriority string `toml:"success_priority"`
	NotifyFailure   bool   `toml:"notify_failure"`
	FailurePriority string `toml:"failure_priority"`
	AppendParUnpack bool   `toml:"append_par_unpack"`
	FileList        bool   `toml:"file_list"`
}

// DeliveryConfig controls the outbound HTTP call. Not exposed as NZBGet
// options.
type DeliveryConfig struct {
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the client timeout as a duration.
func (d DeliveryConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// Defaults returns the values NZBGet would use for a freshly installed
// extension.
func Defaults() Config {
	return Config{
		Encryption: EncryptionConfig{
			Enabled: false,
			Type:    EncryptionFernet,
		},
		Queue: QueueConfig{
			NZBAdded:           true,
			AddedPriority:      "normal",
			NZBDownloaded:      false,
			DownloadedPriority: "normal",
			NZBDeleted:         true,
			DeletedPriority:    "normal",
		},
		PostProcess: PostProcessConfig{
			NotifySuccess:   true,
			SuccessPriority: "normal",
			NotifyFailure:   true,
			FailurePriority: "normal",
			AppendParUnpack: false,
			FileList:        false,
		},
		Delivery: DeliveryConfig{
			Endpoint:       DefaultEndpoint,
			TimeoutSeconds: 10,
		},
	}
}

// Load returns Defaults overlaid with the TOML file at path. An empty path
// skips the file. Unknown keys are rejected as likely typos.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return &cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, strings.Join(keys, ", "))
	}

	return &cfg, nil
}

// ApplyOptions overlays every NZBPO_* option present in ec onto c. Options
// that NZBGet did not pass keep their current value.
func (c *Config) ApplyOptions(ec event.Context) {
	for _, opt := range Options {
		if v, ok := ec.Lookup(opt.Key()); ok {
			opt.set(c, v)
		}
	}
}

// Validate reports configuration problems. Missing credentials are reported
// as *MissingOptionError so callers can name the option; all issues are
// joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.Account.UserKey == "" {
		errs = append(errs, &MissingOptionError{Option: "UserKey"})
	}
	if c.Account.AppToken == "" {
		errs = append(errs, &MissingOptionError{Option: "AppToken"})
	}

	if c.Encryption.Enabled {
		switch c.Encryption.Type {
		case EncryptionFernet, EncryptionAES:
		default:
			errs = append(errs, fmt.Errorf("encryption.type must be %q or %q, got %q", EncryptionFernet, EncryptionAES, c.Encryption.Type))
		}
	}

	u, parseErr := url.ParseRequestURI(c.Delivery.Endpoint)
	if parseErr != nil || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("delivery.endpoint must be a valid http or https URL"))
	}
	if c.Delivery.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("delivery.timeout_seconds must be > 0"))
	}

	return errors.Join(errs...)
}
