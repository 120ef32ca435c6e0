package config

// DefaultConfigYAML contains the sample configuration written by
// `waitfile config init` and printed by `waitfile config`.
// Every value shown is the built-in default.
const DefaultConfigYAML = `# waitfile configuration
#
# Lookup order: --config flag, ./.waitfile.yaml, ~/.config/waitfile/config.yaml.
# Every key can also be set through the environment, e.g. WAITFILE_WAIT_TIMEOUT=30s.
# Durations accept Go syntax (750ms, 2s, 1m30s) or a bare number of milliseconds.

wait:
  # Paths to wait for. Usually given as command line arguments instead.
  resources: []
  # Time before the first poll.
  delay: 0s
  # Time between polls.
  interval: 250ms
  # Quiet period with no size change required before succeeding.
  # Raised to interval when smaller.
  window: 750ms
  # Give up after this long. "infinite" waits forever.
  timeout: infinite
  # Wait for the resources to disappear instead of appear.
  reverse: false
  # Log progress lines (what is still missing, success, timeout).
  log: false
  # Log every snapshot, probe and window verdict at debug level.
  verbose: false

log:
  # debug, info, warn, error
  level: info
  # auto (pretty on a terminal, JSON otherwise), text, json
  format: auto
  no_color: false
  # Regular expressions whose matches are replaced with [REDACTED].
  redact_patterns: []

metrics:
  # Prometheus textfile written when the run finishes. Empty disables it.
  file: ""
`
