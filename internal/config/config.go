package config

import "fmt"

type Config struct {
	Paths      PathsConfig      `yaml:"paths"`
	Database   DatabaseConfig   `yaml:"database"`
	FFmpeg     FFmpegConfig     `yaml:"ffmpeg"`
	Whisper    WhisperConfig    `yaml:"whisper"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Storage    StorageConfig    `yaml:"storage"`
	Feed       FeedConfig       `yaml:"feed"`
	Git        GitConfig        `yaml:"git"`
	TTS        TTSConfig        `yaml:"tts"`
	Timestamps TimestampsConfig `yaml:"timestamps"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type PathsConfig struct {
	Inbox   string `yaml:"inbox"`
	Output  string `yaml:"output"`
	Prompts string `yaml:"prompts"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
	AudioCodec string `yaml:"audio_codec"`
	Bitrate    string `yaml:"bitrate"`
	SampleRate int    `yaml:"sample_rate"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type StorageConfig struct {
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	CredentialsFile string `yaml:"credentials_file"`
	PublicBaseURL   string `yaml:"public_base_url"`
}

type FeedConfig struct {
	Path        string `yaml:"path"`
	Title       string `yaml:"title"`
	Link        string `yaml:"link"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
	Author      string `yaml:"author"`
	ImageURL    string `yaml:"image_url"`
	Category    string `yaml:"category"`
}

type GitConfig struct {
	RepoPath string `yaml:"repo_path"`
	Remote   string `yaml:"remote"`
	Branch   string `yaml:"branch"`
}

type TTSConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Voice      string `yaml:"voice"`
}

type TimestampsConfig struct {
	IntervalMinutes int `yaml:"interval_minutes"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func (c *Config) Validate() error {
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Feed.Path == "" {
		return fmt.Errorf("feed.path is required")
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required")
	}

	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Prompts == "" {
		c.Paths.Prompts = "prompts"
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/coursecast.db"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "libmp3lame"
	}
	if c.FFmpeg.Bitrate == "" {
		c.FFmpeg.Bitrate = "128k"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 44100
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Feed.Title == "" {
		c.Feed.Title = "Course Podcasts"
	}
	if c.Feed.Language == "" {
		c.Feed.Language = "en"
	}
	if c.Feed.Category == "" {
		c.Feed.Category = "Education"
	}
	if c.Git.Remote == "" {
		c.Git.Remote = "origin"
	}
	if c.Git.Branch == "" {
		c.Git.Branch = "main"
	}
	if c.TTS.BinaryPath == "" {
		c.TTS.BinaryPath = "edge-tts"
	}
	if c.TTS.Voice == "" {
		c.TTS.Voice = "en-US-AriaNeural"
	}
	if c.Timestamps.IntervalMinutes == 0 {
		c.Timestamps.IntervalMinutes = 5
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
