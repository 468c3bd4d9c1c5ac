package config

// File represents the structure of the tasklist.yaml configuration file.
// Pointer fields distinguish "unset" from zero values so defaults survive.
type File struct {
	Storage *StorageDTO `yaml:"storage"`
	Display *DisplayDTO `yaml:"display"`
	Log     *LogDTO     `yaml:"log"`
}

// StorageDTO represents the storage section.
type StorageDTO struct {
	Backend      *string `yaml:"backend"`
	Dir          *string `yaml:"dir"`
	Key          *string `yaml:"key"`
	WriteRetries *int    `yaml:"write_retries"`
	RetryBackoff *string `yaml:"retry_backoff"`
}

// DisplayDTO represents the display section.
type DisplayDTO struct {
	TimestampLayout *string `yaml:"timestamp_layout"`
}

// LogDTO represents the log section.
type LogDTO struct {
	JSON  *bool `yaml:"json"`
	Trace *bool `yaml:"trace"`
}
