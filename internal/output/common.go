package output

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "sequence_id\tsource\tlength\tgc\ttm_c\thomopolymer\tentropy\tcodon_bias\tcrossings\tcomplexity\tscore\tlevel\tflags"

// Output format names accepted by --output.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)
