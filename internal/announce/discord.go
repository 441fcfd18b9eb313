package announce

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/fortunaworks/spinvault/internal/domain"
	"github.com/fortunaworks/spinvault/internal/event"
	"github.com/fortunaworks/spinvault/internal/logger"
)

// Announcer posts jackpot wins and reward pool depletions to a Discord
// channel. It is a passive event subscriber; announcement failures never
// affect spin processing.
type Announcer struct {
	session   *discordgo.Session
	channelID string
}

// New creates an Announcer with its own Discord session
func New(token, channelID string) (*Announcer, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	return &Announcer{
		session:   s,
		channelID: channelID,
	}, nil
}

// Start opens the Discord gateway connection
func (a *Announcer) Start() error {
	if err := a.session.Open(); err != nil {
		return fmt.Errorf("error opening Discord connection: %w", err)
	}
	logger.Info(LogMsgAnnouncerStarted, "channel_id", a.channelID)
	return nil
}

// Stop closes the Discord session
func (a *Announcer) Stop() {
	if err := a.session.Close(); err != nil {
		logger.Warn(LogMsgAnnouncerCloseFailed, "error", err)
	}
}

// Register subscribes the announcer to the events it reports on
func (a *Announcer) Register(bus event.Bus) {
	bus.Subscribe(event.JackpotWon, a.handleJackpotWon)
	bus.Subscribe(event.RewardTokenDepleted, a.handleTokenDepleted)
}

func (a *Announcer) handleJackpotWon(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.JackpotWonPayloadV1)
	if !ok {
		return fmt.Errorf(ErrMsgUnexpectedPayload, evt.Type)
	}

	msg := fmt.Sprintf(MsgJackpotWon, payload.WinnerID, formatAmount(payload.Amount))
	return a.send(ctx, msg)
}

func (a *Announcer) handleTokenDepleted(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.RewardTokenDepletedPayloadV1)
	if !ok {
		return fmt.Errorf(ErrMsgUnexpectedPayload, evt.Type)
	}

	msg := fmt.Sprintf(MsgTokenDepleted, payload.Asset, formatAmount(payload.AttemptedAmount))
	return a.send(ctx, msg)
}

func (a *Announcer) send(ctx context.Context, msg string) error {
	if _, err := a.session.ChannelMessageSend(a.channelID, msg); err != nil {
		logger.FromContext(ctx).Error(LogMsgAnnounceFailed, "error", err, "channel_id", a.channelID)
		return err
	}
	return nil
}

// formatAmount renders a base unit amount in display units
func formatAmount(amount int64) string {
	whole := amount / domain.BaseUnitsPerDisplayUnit
	frac := amount % domain.BaseUnitsPerDisplayUnit
	if frac == 0 {
		return fmt.Sprintf("%d", whole)
	}
	return fmt.Sprintf("%d.%02d", whole, frac)
}
