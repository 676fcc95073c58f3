package server

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/custodylabs/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func writeConfigFile(t *testing.T, home, content string) {
	t.Helper()
	path := ConfigPath(home)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
}

func TestLoadConfig(t *testing.T) {
	cases := map[string]struct {
		content string
		want    Config
		wantErr *errors.Error
	}{
		"missing file gives defaults": {
			want: DefaultConfig(),
		},
		"partial file keeps other defaults": {
			content: "bind = \"tcp://0.0.0.0:26658\"\ndebug = true\n",
			want: Config{
				Bind:     "tcp://0.0.0.0:26658",
				LogLevel: "info",
				Debug:    true,
				DBPath:   "custody.db",
			},
		},
		"all fields": {
			content: `
bind = "unix://custody.sock"
metrics_bind = ":9090"
log_level = "main:debug,*:error"
debug = false
db_path = "/var/lib/custody/state"
`,
			want: Config{
				Bind:        "unix://custody.sock",
				MetricsBind: ":9090",
				LogLevel:    "main:debug,*:error",
				DBPath:      "/var/lib/custody/state",
			},
		},
		"unknown key": {
			content: "bnid = \"tcp://localhost:1\"\n",
			wantErr: errors.ErrInput,
		},
		"broken toml": {
			content: "bind = \n",
			wantErr: errors.ErrInput,
		},
		"invalid log level": {
			content: "log_level = \"loud\"\n",
			wantErr: errors.ErrInput,
		},
		"invalid module level": {
			content: "log_level = \"main:loud,*:error\"\n",
			wantErr: errors.ErrInput,
		},
		"malformed module filter": {
			content: "log_level = \"main:debug:x\"\n",
			wantErr: errors.ErrInput,
		},
		"empty log level": {
			content: "log_level = \"\"\n",
			wantErr: errors.ErrInput,
		},
		"empty bind": {
			content: "bind = \"\"\n",
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			home, err := ioutil.TempDir("", "custody-config")
			require.NoError(t, err)
			defer os.RemoveAll(home)

			if tc.content != "" {
				writeConfigFile(t, home, tc.content)
			}
			conf, err := LoadConfig(home)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, conf)
		})
	}
}

func TestWriteConfigKeepsExisting(t *testing.T) {
	home, err := ioutil.TempDir("", "custody-config")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	custom := DefaultConfig()
	custom.MetricsBind = ":9100"
	written, err := WriteConfig(home, custom)
	require.NoError(t, err)
	assert.True(t, written)

	loaded, err := LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, custom, loaded)

	written, err = WriteConfig(home, DefaultConfig())
	require.NoError(t, err)
	assert.False(t, written)

	loaded, err = LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, ":9100", loaded.MetricsBind)
}

func TestConfigDatabase(t *testing.T) {
	cases := map[string]struct {
		dbPath string
		want   string
	}{
		"relative to home": {dbPath: "custody.db", want: filepath.Join("/home/node", "custody.db")},
		"absolute":         {dbPath: "/data/state.db", want: "/data/state.db"},
		"memory":           {dbPath: "", want: ""},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			conf := Config{DBPath: tc.dbPath}
			assert.Equal(t, tc.want, conf.Database("/home/node"))
		})
	}
}

func TestParseFlagsOverridesConfig(t *testing.T) {
	conf, err := parseFlags(DefaultConfig(), []string{"-bind", "tcp://127.0.0.1:1234", "-debug"})
	require.NoError(t, err)
	assert.Equal(t, "tcp://127.0.0.1:1234", conf.Bind)
	assert.True(t, conf.Debug)
	assert.Equal(t, "info", conf.LogLevel)

	_, err = parseFlags(DefaultConfig(), []string{"-log_level", "nope"})
	require.Error(t, err)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestFilterLoggerModules(t *testing.T) {
	var buf bytes.Buffer
	conf := DefaultConfig()
	conf.LogLevel = "main:debug,*:error"
	logger, err := conf.FilterLogger(log.NewTMLogger(log.NewSyncWriter(&buf)))
	require.NoError(t, err)

	logger.With("module", "main").Debug("main detail")
	logger.With("module", "store").Info("store chatter")
	logger.Error("global failure")

	out := buf.String()
	assert.Contains(t, out, "main detail")
	assert.NotContains(t, out, "store chatter")
	assert.Contains(t, out, "global failure")
}
