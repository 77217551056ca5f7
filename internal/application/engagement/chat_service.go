package engagement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/application/txn"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Chat errors
var (
	ErrRoomNotFound   = shared.NotFound("Chat room not found")
	ErrNotParticipant = shared.Forbidden("You are not a participant of this chat")
)

// ChatService runs buyer and seller conversations
type ChatService struct {
	access  SellerResolver
	users   identity.UserRepository
	chats   engagement.ChatRepository
	txScope txn.TransactionScope
	events  shared.EventPublisher
	logger  *zap.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	access SellerResolver,
	users identity.UserRepository,
	chats engagement.ChatRepository,
	txScope txn.TransactionScope,
	events shared.EventPublisher,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		access:  access,
		users:   users,
		chats:   chats,
		txScope: txScope,
		events:  events,
		logger:  logger,
	}
}

// OpenRoom returns the buyer's room for (seller, product), creating it on first use.
// created reports whether a new room was stored.
func (s *ChatService) OpenRoom(ctx context.Context, buyerID uuid.UUID, req OpenRoomRequest) (resp *ChatRoomResponse, created bool, err error) {
	buyer, err := buyerUser(ctx, s.users, buyerID)
	if err != nil {
		return nil, false, err
	}
	seller, err := s.access.Seller(ctx, req.SellerID)
	if err != nil {
		return nil, false, err
	}

	var room *engagement.ChatRoom
	err = s.txScope.Execute(ctx, func(repos txn.Repositories) error {
		if req.ProductID != nil {
			if _, err := repos.Products().FindBySellerAndID(ctx, seller.ID, *req.ProductID); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return ErrProductNotFound
				}
				return err
			}
		}

		existing, err := repos.Chats().FindRoom(ctx, buyer.ID, seller.ID, req.ProductID)
		if err == nil {
			room = existing
			return nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		room, err = engagement.NewChatRoom(buyer.ID, seller.ID, seller.UserID, req.ProductID)
		if err != nil {
			return err
		}
		if err := repos.Chats().CreateRoom(ctx, room); err != nil {
			if !errors.Is(err, shared.ErrAlreadyExists) {
				return err
			}
			// a concurrent request stored the room first
			room, err = repos.Chats().FindRoom(ctx, buyer.ID, seller.ID, req.ProductID)
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		s.logger.Info("Chat room opened",
			zap.String("room_id", room.ID.String()),
			zap.String("seller_id", seller.ID.String()),
		)
	}
	out := toChatRoomResponse(room)
	return &out, created, nil
}

// ListRooms returns the rooms the user takes part in on either side
func (s *ChatService) ListRooms(ctx context.Context, userID uuid.UUID) ([]ChatRoomResponse, error) {
	listings, err := s.chats.ListRoomsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]ChatRoomResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toChatRoomListingResponse(l))
	}
	return out, nil
}

// Messages returns the newest messages of a room in chronological order
func (s *ChatService) Messages(ctx context.Context, userID, roomID uuid.UUID, limit int) ([]ChatMessageResponse, error) {
	room, err := s.participantRoom(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}
	limit = shared.NewPagination(1, limit, DefaultMessageLimit).Limit

	msgs, err := s.chats.ListMessages(ctx, room.ID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]ChatMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toChatMessageResponse(m))
	}
	return out, nil
}

// Post adds a message from a participant. Messages from the buyer raise MessageReceived.
func (s *ChatService) Post(ctx context.Context, userID, roomID uuid.UUID, req PostMessageRequest) (*ChatMessageResponse, error) {
	room, err := s.participantRoom(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}
	mt, err := engagement.ParseMessageType(req.MessageType)
	if err != nil {
		return nil, err
	}
	msg, err := room.Post(userID, req.Content, mt, req.attachment())
	if err != nil {
		return nil, err
	}
	if err := s.chats.AddMessage(ctx, room, msg); err != nil {
		return nil, err
	}

	if userID == room.BuyerID {
		name := ""
		if sender, err := s.users.FindByID(ctx, userID); err == nil {
			name = sender.FullName()
		}
		publish(ctx, s.events, s.logger, []shared.DomainEvent{engagement.NewMessageReceivedEvent(room, msg, name)})
	}

	resp := toChatMessageResponse(msg)
	return &resp, nil
}

// MarkRead flags the other party's messages in the room as read
func (s *ChatService) MarkRead(ctx context.Context, userID, roomID uuid.UUID) (*MarkReadResponse, error) {
	room, err := s.participantRoom(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}
	n, err := s.chats.MarkRead(ctx, room.ID, userID, time.Now())
	if err != nil {
		return nil, err
	}
	return &MarkReadResponse{Updated: n}, nil
}

func (s *ChatService) participantRoom(ctx context.Context, userID, roomID uuid.UUID) (*engagement.ChatRoom, error) {
	room, err := s.chats.FindRoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return room, nil
}
