package kafka

// Config holds Kafka connection parameters.
type Config struct {
	Brokers []string
}

// Enabled reports whether any broker has been configured.
func (c Config) Enabled() bool {
	return len(c.Brokers) > 0
}
