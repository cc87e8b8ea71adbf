package clock

var (
	Choices         = choices
	Lookup          = lookup
	ParseInt        = parseInt
	ParseClockValue = parseClockValue
	ParseBool       = parseBool
)
