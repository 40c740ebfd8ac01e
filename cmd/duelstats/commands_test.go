/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeb26/duelresult/internal"
)

const scenarioReport = `total,win,draw,lose,balance-s,balance-g,winrate,R,95%
7,3,2,2,5,4,28.57%,+70.4,58.1
ev1   ,win,draw,lose
ev1 @@,2,1,1
ev1 [],1,1,1
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func tempConfig(t *testing.T) string {
	t.Helper()
	t.Setenv(internal.EnvBucket, "")
	t.Setenv(internal.EnvWebhook, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf("store:\n  backend: disk\n  dir: %v\nseries: lv5\n",
		filepath.Join(dir, "store"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func writeFile(t *testing.T, name string, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const scenarioLog = `2026-03-01T10:00:00Z,first,1-0
2026-03-01T10:05:00Z,first,1-0
2026-03-01T10:10:00Z,first,1/2-1/2
2026-03-01T10:15:00Z,first,0-1
2026-03-01T10:20:00Z,second,0-1
2026-03-01T10:25:00Z,second,1-0
2026-03-01T10:30:00Z,second,1/2-1/2
`

func TestSummaryCmd(t *testing.T) {
	cfg := tempConfig(t)

	out, err := run(t, "--config", cfg, "summary",
		"--win", "2,1", "--draw", "1,1", "--lose", "1,1")
	require.NoError(t, err)
	assert.Equal(t, scenarioReport, out)

	out, err = run(t, "--config", cfg, "summary", "--win", "2,1",
		"--draw", "1,1", "--lose", "1,1", "--total", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "\n8,3,2,2,5,4,25.00%,+70.4,")

	out, err = run(t, "--config", cfg, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "0,0,0,0,0,0,NaN%,+NaN,0.0")
}

func TestSummaryCmdErrors(t *testing.T) {
	cfg := tempConfig(t)

	for _, args := range [][]string{
		{"summary", "--win", "2"},
		{"summary", "--draw", "1,x"},
		{"summary", "--lose", "-1,0"},
		{"summary", "--total", "99999999999"},
		{"summary", "extra"},
	} {
		_, err := run(t, append([]string{"--config", cfg}, args...)...)
		assert.Error(t, err, "%v", args)
	}
}

func TestTallyPushShow(t *testing.T) {
	cfg := tempConfig(t)
	logPath := writeFile(t, "lv5.log", scenarioLog)

	out, err := run(t, "--config", cfg, "tally", logPath)
	require.NoError(t, err)
	assert.Equal(t, scenarioReport, out)

	_, err = run(t, "--config", cfg, "show")
	assert.Error(t, err)

	_, err = run(t, "--config", cfg, "tally", logPath, "--push", "lv5")
	require.NoError(t, err)

	out, err = run(t, "--config", cfg, "show")
	require.NoError(t, err)
	assert.Equal(t, scenarioReport, out)

	out, err = run(t, "--config", cfg, "tally", logPath, "--push", "lv5", "--append")
	require.NoError(t, err)
	assert.Contains(t, out, "\n7,")

	out, err = run(t, "--config", cfg, "show", "lv5")
	require.NoError(t, err)
	assert.Contains(t, out, "\n14,6,4,4,10,8,")
}

func TestTallySince(t *testing.T) {
	cfg := tempConfig(t)
	logPath := writeFile(t, "lv5.log", scenarioLog)

	out, err := run(t, "--config", cfg, "tally", logPath, "--since", "2026-03-01T10:20:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "\n3,1,1,1,")

	_, err = run(t, "--config", cfg, "tally", logPath, "--since", "whenever")
	assert.Error(t, err)

	_, err = run(t, "--config", cfg, "tally", filepath.Join(t.TempDir(), "missing.log"))
	assert.Error(t, err)
}

func TestTallyNotifyWithoutWebhook(t *testing.T) {
	cfg := tempConfig(t)
	logPath := writeFile(t, "lv5.log", scenarioLog)

	_, err := run(t, "--config", cfg, "tally", logPath, "--notify")
	assert.ErrorContains(t, err, "no discord webhook configured")
}

func TestMergeCmd(t *testing.T) {
	cfg := tempConfig(t)
	a := writeFile(t, "a.txt", scenarioReport)
	b := writeFile(t, "b.txt", scenarioReport)

	out, err := run(t, "--config", cfg, "merge", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "\n14,6,4,4,10,8,")
	assert.Contains(t, out, "ev1 @@,4,2,2\nev1 [],2,2,2\n")

	bad := writeFile(t, "bad.txt", "not a report")
	_, err = run(t, "--config", cfg, "merge", a, bad)
	assert.Error(t, err)
}

func TestPushToUnreachableBucket(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	t.Setenv("AWS_CONFIG_FILE", empty)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", empty)
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDTEST")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	t.Setenv("AWS_MAX_ATTEMPTS", "1")
	t.Setenv(internal.EnvBucket, "")
	t.Setenv(internal.EnvWebhook, "")

	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	cfg := writeFile(t, "config.yaml", fmt.Sprintf(
		"store:\n  backend: s3\n  bucket: duelresult-test\n  endpoint: %v\nseries: lv5\n",
		endpoint))
	logPath := writeFile(t, "lv5.log", scenarioLog)

	_, err := run(t, "--config", cfg, "tally", logPath, "--push", "lv5")
	assert.ErrorContains(t, err, "snapstore.open")

	_, err = run(t, "--config", cfg, "tally", logPath, "--push", "lv5", "--append")
	assert.ErrorContains(t, err, "snapstore.open")

	_, err = run(t, "--config", cfg, "show", "lv5")
	assert.ErrorContains(t, err, "snapstore.open")
}

func TestBadConfig(t *testing.T) {
	t.Setenv(internal.EnvBucket, "")
	path := writeFile(t, "config.yaml", "store:\n  backend: floppy\n")

	_, err := run(t, "--config", path, "summary")
	assert.Error(t, err)
}
