package kafka_config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_TrimsBrokers(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "kafka-1:9092, kafka-2:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
}

func TestLoad_StreamDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Stream{
		Name:    "notifications",
		Topic:   DefaultNotificationsTopic,
		DLQ:     DefaultNotificationsDLQ,
		GroupID: DefaultNotificationsGroupID,
	}, cfg.Notifications)
	assert.Equal(t, Stream{
		Name:    "imports",
		Topic:   DefaultImportsTopic,
		DLQ:     DefaultImportsDLQ,
		GroupID: DefaultImportsGroupID,
	}, cfg.Imports)
	assert.Equal(t, int64(-2), cfg.StartOffset)
}

func TestLoad_StreamOverrides(t *testing.T) {
	t.Setenv(EnvImportsTopic, "staging-imports")
	t.Setenv(EnvImportsDLQ, "")
	t.Setenv(EnvImportsGroupID, "staging-importer")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "staging-imports", cfg.Imports.Topic)
	assert.Equal(t, DefaultImportsDLQ, cfg.Imports.DLQ)
	assert.Equal(t, "staging-importer", cfg.Imports.GroupID)
}

func TestLoad_RejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown compression",
			env:     map[string]string{EnvKafkaCompression: "brotli"},
			wantErr: "Compression",
		},
		{
			name:    "absolute start offset",
			env:     map[string]string{EnvKafkaStartOffset: "42"},
			wantErr: "StartOffset",
		},
		{
			name:    "dlq equals topic",
			env:     map[string]string{EnvNotificationsDLQ: DefaultNotificationsTopic},
			wantErr: "notifications DLQ must differ",
		},
		{
			name:    "streams share a topic",
			env:     map[string]string{EnvImportsTopic: DefaultNotificationsTopic},
			wantErr: "cannot share topic",
		},
		{
			name:    "streams share a group",
			env:     map[string]string{EnvImportsGroupID: DefaultNotificationsGroupID},
			wantErr: "cannot share group ID",
		},
		{
			name:    "non-positive retry backoff",
			env:     map[string]string{EnvKafkaRetryBackoff: "0s"},
			wantErr: "RetryBackoff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_RequiresStreamTopicAndGroup(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Imports.Topic = ""
	cfg.Notifications.GroupID = ""

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "imports topic cannot be empty")
	assert.Contains(t, err.Error(), "notifications group ID cannot be empty")
}
