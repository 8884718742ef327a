package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig names the three SQLite store files. ArchivePath is the
// primary store (tickets + messages) and is required at serving time;
// KBPath and HelpPath are secondary stores that may be absent.
type DatabaseConfig struct {
	ArchivePath string `mapstructure:"archive_path"`
	KBPath      string `mapstructure:"kb_path"`
	HelpPath    string `mapstructure:"help_path"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type ImporterConfig struct {
	ActionCSVPaths []string `mapstructure:"action_csv_paths"`
	CannedPath     string   `mapstructure:"canned_path"`
	HelpArticleDir string   `mapstructure:"help_article_dir"`
	BatchSize      int      `mapstructure:"batch_size"`
}

type PIIConfig struct {
	SystemDomains     []string `mapstructure:"system_domains"`
	MaskStaffEmails   bool     `mapstructure:"mask_staff_emails"`
	MaskGreetingNames bool     `mapstructure:"mask_greeting_names"`
}
