package report

const (
	reset  = "\033[0m"
	red    = "\033[31m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	gray   = "\033[90m"
	bold   = "\033[1m"
	dim    = "\033[2m"
)

var (
	headerStyle  = cyan + bold
	errorStyle   = red + bold
	countStyle   = yellow + bold
	dimStyle     = dim
	metaStyle    = gray
	warningStyle = yellow + bold
)
