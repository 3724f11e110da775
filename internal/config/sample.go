package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# SiteLens configuration
version: "1.0"

# Interaction tracker
tracker:
  # Durable slot store (JSON object file, one key per slot)
  store_path: "~/.local/share/sitelens/storage.json"
  # Directory that receives tracking_data.txt on export
  export_dir: "."
  # Visible area ratio at which a section counts as viewed (0, 1]
  visibility_threshold: 0.5
  # Do not echo log lines to the console
  quiet: false

# Text analyzer
analysis:
  # Texts with fewer words are rejected
  min_words: 10000
  # Upper bound for one analysis run
  timeout: 30s
  # Largest input accepted from a file or stdin
  max_input_bytes: 67108864
  # Skip pronouns, prepositions and articles
  disable_default_vocabularies: false
  # Extra vocabularies counted after the built-in ones
  vocabularies: []
  #  - name: conjunctions
  #    title: Conjunctions
  #    words: [and, but, or, nor, for, yet, so]

# Output
output:
  # text, html, json, markdown, csv
  default_format: "text"
  # auto, always, never
  color_mode: "auto"
  verbose: false
  # default, high-contrast, minimal
  theme: "default"
`
}

// MinimalSampleConfig returns the smallest useful configuration file
func MinimalSampleConfig() string {
	return `version: "1.0"
tracker:
  store_path: "~/.local/share/sitelens/storage.json"
analysis:
  min_words: 10000
output:
  default_format: "text"
`
}
