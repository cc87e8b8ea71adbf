package metrics

const (
	ClockCallsH = "The total number of clock commands dispatched, by subcommand"
	ClockCallsN = "clockservice_clock_calls"
	ClockErrsH  = "The total number of clock commands that failed, by subcommand and error kind"
	ClockErrsN  = "clockservice_clock_errors"

	ZoneSectionsH  = "The total number of zone guard sections entered"
	ZoneSectionsN  = "clockservice_zone_sections"
	ZoneOverridesH = "The total number of temporary ambient zone overrides installed"
	ZoneOverridesN = "clockservice_zone_overrides"

	ServerPktsReceivedH = "The total number of packets received"
	ServerPktsReceivedN = "clockservice_server_pkts_received"
	ServerReqsAcceptedH = "The total number of requests accepted"
	ServerReqsAcceptedN = "clockservice_server_reqs_accepted"
	ServerReqsServedH   = "The total number of requests served"
	ServerReqsServedN   = "clockservice_server_reqs_served"

	ClientReqsSentH      = "The total number of requests sent"
	ClientReqsSentN      = "clockservice_client_reqs_sent"
	ClientRespsAcceptedH = "The total number of responses accepted"
	ClientRespsAcceptedN = "clockservice_client_resps_accepted"

	NTPClockSyncsH    = "The total number of successful NTP offset queries"
	NTPClockSyncsN    = "clockservice_ntp_clock_syncs"
	NTPClockSyncErrsH = "The total number of failed NTP offset queries"
	NTPClockSyncErrsN = "clockservice_ntp_clock_sync_errors"
	NTPClockOffsetH   = "The current wall clock correction applied based on NTP"
	NTPClockOffsetN   = "clockservice_ntp_clock_offset"
)
