package config

import "strings"

// Option describes one NZBGet extension option. The same table drives
// ApplyOptions and the generated manifest.
type Option struct {
	Name        string
	Default     string
	Description []string
	Select      []string
	set         func(c *Config, value string)
}

// Key returns the environment variable NZBGet uses to pass the option.
func (o Option) Key() string {
	return "NZBPO_" + strings.ToUpper(o.Name)
}

var (
	yesNo      = []string{"yes", "no"}
	priorities = []string{"low", "normal", "high"}
)

var priorityHelp = []string{
	"Low priority (quiet notification).",
	"Normal priority.",
	"High priority (sends notification as time sensitive).",
}

// Options lists every option in the order NZBGet shows them.
var Options = []Option{
	{
		Name:        "UserKey",
		Description: []string{"NZBClient user key."},
		set:         func(c *Config, v string) { c.Account.UserKey = v },
	},
	{
		Name:        "AppToken",
		Description: []string{"Application token/key."},
		set:         func(c *Config, v string) { c.Account.AppToken = v },
	},
	{
		Name:        "EncryptionEnabled",
		Default:     "no",
		Select:      yesNo,
		Description: []string{"Enable message encryption (optional)."},
		set:         func(c *Config, v string) { c.Encryption.Enabled = v == "yes" },
	},
	{
		Name:        "EncryptionType",
		Default:     EncryptionFernet,
		Select:      []string{EncryptionFernet, EncryptionAES},
		Description: []string{"Encryption scheme: fernet (key must be a Fernet key) or aes (AES-256-CBC with a PBKDF2 passphrase)."},
		set:         func(c *Config, v string) { c.Encryption.Type = v },
	},
	{
		Name:        "PrivateKey",
		Description: []string{"Encryption private key (optional)."},
		set:         func(c *Config, v string) { c.Encryption.PrivateKey = v },
	},
	{
		Name:        "NZBAdded",
		Default:     "yes",
		Select:      yesNo,
		Description: []string{"Send NZB added notification (queue only)."},
		set:         func(c *Config, v string) { c.Queue.NZBAdded = v == "yes" },
	},
	{
		Name:        "AddedPriority",
		Default:     "normal",
		Select:      priorities,
		Description: append([]string{"Priority of NZB added notification (queue only)."}, priorityHelp...),
		set:         func(c *Config, v string) { c.Queue.AddedPriority = v },
	},
	{
		Name:        "NZBDownloaded",
		Default:     "no",
		Select:      yesNo,
		Description: []string{"Send NZB downloaded notification (queue only, no need of the post-processing notification)."},
		set:         func(c *Config, v string) { c.Queue.NZBDownloaded = v == "yes" },
	},
	{
		Name:        "DownloadedPriority",
		Default:     "normal",
		Select:      priorities,
		Description: append([]string{"Priority of NZB downloaded notification (queue only)."}, priorityHelp...),
		set:         func(c *Config, v string) { c.Queue.DownloadedPriority = v },
	},
	{
		Name:        "NZBDeleted",
		Default:     "yes",
		Select:      yesNo,
		Description: []string{"Send NZB deleted notification (queue only)."},
		set:         func(c *Config, v string) { c.Queue.NZBDeleted = v == "yes" },
	},
	{
		Name:        "DeletedPriority",
		Default:     "normal",
		Select:      priorities,
		Description: append([]string{"Priority of NZB deleted notification (queue only)."}, priorityHelp...),
		set:         func(c *Config, v string) { c.Queue.DeletedPriority = v },
	},
	{
		Name:        "NotifySuccess",
		Default:     "yes",
		Select:      yesNo,
		Description: []string{"Send success notification (post-processing only)."},
		set:         func(c *Config, v string) { c.PostProcess.NotifySuccess = v == "yes" },
	},
	{
		Name:        "SuccessPriority",
		Default:     "normal",
		Select:      priorities,
		Description: append([]string{"Priority of success notification (post-processing only)."}, priorityHelp...),
		set:         func(c *Config, v string) { c.PostProcess.SuccessPriority = v },
	},
	{
		Name:        "NotifyFailure",
		Default:     "yes",
		Select:      yesNo,
		Description: []string{"Send failure notification (post-processing only)."},
		set:         func(c *Config, v string) { c.PostProcess.NotifyFailure = v == "yes" },
	},
	{
		Name:        "FailurePriority",
		Default:     "normal",
		Select:      priorities,
		Description: append([]string{"Priority of failure notification (post-processing only)."}, priorityHelp...),
		set:         func(c *Config, v string) { c.PostProcess.FailurePriority = v },
	},
	{
		Name:        "AppendParUnpack",
		Default:     "no",
		Select:      yesNo,
		Description: []string{"Append Par-Status and Unpack-Status to the message (post-processing only)."},
		set:         func(c *Config, v string) { c.PostProcess.AppendParUnpack = v == "yes" },
	},
	{
		Name:        "FileList",
		Default:     "no",
		Select:      yesNo,
		Description: []string{"Append the list of downloaded files, the content of the destination directory (post-processing only)."},
		set:         func(c *Config, v string) { c.PostProcess.FileList = v == "yes" },
	},
}
