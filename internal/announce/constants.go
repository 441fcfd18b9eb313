package announce

// Announcement message templates
const (
	MsgJackpotWon    = "🎰 **JACKPOT!** <@%s> just won the pot of %s tokens!"
	MsgTokenDepleted = "⚠️ Reward pool for **%s** ran dry (attempted payout: %s). Substituting the fallback token."
)

// Log messages
const (
	LogMsgAnnouncerStarted     = "Discord announcer started"
	LogMsgAnnouncerCloseFailed = "Failed to close Discord session"
	LogMsgAnnounceFailed       = "Failed to send announcement"
)

// Error message formats
const (
	ErrMsgUnexpectedPayload = "unexpected payload type for event %s"
)
