package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/domain/catalog"
	"github.com/retailorders/backend/internal/domain/identity"
	"github.com/retailorders/backend/internal/domain/ordering"
	"github.com/retailorders/backend/internal/domain/shared"
)

// RegistrationHandler emails the confirmation token to freshly registered
// users. The token is created in the same transaction as the user, so it is
// looked up by user and purpose at delivery time.
type RegistrationHandler struct {
	tokens identity.ConfirmationTokenRepository
	sender EmailSender
	logger *zap.Logger
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(tokens identity.ConfirmationTokenRepository, sender EmailSender, logger *zap.Logger) *RegistrationHandler {
	return &RegistrationHandler{tokens: tokens, sender: sender, logger: logger}
}

// EventTypes returns the handled event types
func (h *RegistrationHandler) EventTypes() []string {
	return []string{identity.EventTypeUserRegistered}
}

// Handle sends the confirmation email
func (h *RegistrationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	registered, ok := event.(*identity.UserRegisteredEvent)
	if !ok {
		return nil
	}

	token, err := h.tokens.FindByUserAndPurpose(ctx, registered.UserID, identity.TokenPurposeConfirmEmail)
	if err != nil {
		return fmt.Errorf("confirmation token not found for %s: %w", registered.Email, err)
	}

	body := fmt.Sprintf(
		"Welcome!\n\nConfirm your email address with this token:\n\n%s\n\nThe token expires in %s.",
		token.Key, identity.DefaultTokenTTL)

	if err := h.sender.Send(ctx, []string{registered.Email}, "Confirm your registration", body); err != nil {
		return err
	}

	h.logger.Info("confirmation email sent", zap.String("email", registered.Email))
	return nil
}

// PasswordResetHandler emails password reset tokens
type PasswordResetHandler struct {
	sender EmailSender
	logger *zap.Logger
}

// NewPasswordResetHandler creates a new PasswordResetHandler
func NewPasswordResetHandler(sender EmailSender, logger *zap.Logger) *PasswordResetHandler {
	return &PasswordResetHandler{sender: sender, logger: logger}
}

// EventTypes returns the handled event types
func (h *PasswordResetHandler) EventTypes() []string {
	return []string{identity.EventTypePasswordResetRequested}
}

// Handle sends the reset email
func (h *PasswordResetHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	reset, ok := event.(*identity.PasswordResetRequestedEvent)
	if !ok {
		return nil
	}

	body := fmt.Sprintf(
		"A password reset was requested for your account.\n\nReset token:\n\n%s\n\nIgnore this message if you did not ask for it.",
		reset.TokenKey)

	if err := h.sender.Send(ctx, []string{reset.Email}, "Password reset", body); err != nil {
		return err
	}

	h.logger.Info("password reset email sent", zap.String("email", reset.Email))
	return nil
}

// OrderPlacedHandler notifies the buyer and every affected shop owner when
// an order is placed
type OrderPlacedHandler struct {
	users  identity.UserRepository
	shops  catalog.ShopRepository
	sender EmailSender
	logger *zap.Logger
}

// NewOrderPlacedHandler creates a new OrderPlacedHandler
func NewOrderPlacedHandler(users identity.UserRepository, shops catalog.ShopRepository, sender EmailSender, logger *zap.Logger) *OrderPlacedHandler {
	return &OrderPlacedHandler{users: users, shops: shops, sender: sender, logger: logger}
}

// EventTypes returns the handled event types
func (h *OrderPlacedHandler) EventTypes() []string {
	return []string{ordering.EventTypeOrderPlaced}
}

// Handle emails the buyer a confirmation and each shop owner a new-order
// notice. A failure for one recipient does not stop the others.
func (h *OrderPlacedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*ordering.OrderPlacedEvent)
	if !ok {
		return nil
	}

	var firstErr error

	buyer, err := h.users.FindByID(ctx, placed.UserID)
	if err != nil {
		firstErr = fmt.Errorf("buyer %s not found: %w", placed.UserID, err)
	} else {
		body := fmt.Sprintf("Thank you for your order.\n\nOrder %s has been received and passed to the suppliers.", placed.OrderID)
		if err := h.sender.Send(ctx, []string{buyer.Email}, "Order received", body); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for _, shopID := range placed.ShopIDs {
		shop, err := h.shops.FindByID(ctx, shopID)
		if err != nil {
			h.logger.Warn("shop not found for order notification",
				zap.String("shop_id", shopID.String()), zap.Error(err))
			continue
		}
		if shop.UserID == nil {
			continue
		}
		owner, err := h.users.FindByID(ctx, *shop.UserID)
		if err != nil {
			h.logger.Warn("shop owner not found for order notification",
				zap.String("shop_id", shopID.String()), zap.Error(err))
			continue
		}

		body := fmt.Sprintf("Order %s contains listings of your shop %s.\n\nCheck your incoming orders for the details.",
			placed.OrderID, shop.Name)
		if err := h.sender.Send(ctx, []string{owner.Email}, "New incoming order", body); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			h.logger.Warn("failed to notify shop owner",
				zap.String("shop_id", shopID.String()), zap.Error(err))
		}
	}

	return firstErr
}

// Ensure handlers satisfy shared.EventHandler
var (
	_ shared.EventHandler = (*RegistrationHandler)(nil)
	_ shared.EventHandler = (*PasswordResetHandler)(nil)
	_ shared.EventHandler = (*OrderPlacedHandler)(nil)
)
