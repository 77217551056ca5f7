package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormChatRepository implements ChatRepository using GORM
type GormChatRepository struct {
	db *gorm.DB
}

// NewGormChatRepository creates a new GormChatRepository
func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

// FindRoom looks up the room of the (buyer, seller, product) triple.
// A nil product matches only rooms without a product.
func (r *GormChatRepository) FindRoom(ctx context.Context, buyerID, sellerID uuid.UUID, productID *uuid.UUID) (*engagement.ChatRoom, error) {
	query := r.db.WithContext(ctx).Where("buyer_id = ? AND seller_id = ?", buyerID, sellerID)
	if productID == nil {
		query = query.Where("product_id IS NULL")
	} else {
		query = query.Where("product_id = ?", *productID)
	}
	var model models.ChatRoomModel
	if err := query.Order("created_at").First(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// CreateRoom stores a new room. It returns shared.ErrAlreadyExists when
// another room already holds the same triple.
func (r *GormChatRepository) CreateRoom(ctx context.Context, room *engagement.ChatRoom) error {
	var model models.ChatRoomModel
	model.FromDomain(room)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrAlreadyExists
	}
	return nil
}

// FindRoomByID finds a room by ID
func (r *GormChatRepository) FindRoomByID(ctx context.Context, id uuid.UUID) (*engagement.ChatRoom, error) {
	var model models.ChatRoomModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// ListRoomsForUser returns the active rooms the user takes part in, most recently active first
func (r *GormChatRepository) ListRoomsForUser(ctx context.Context, userID uuid.UUID) ([]engagement.ChatRoomListing, error) {
	db := r.db.WithContext(ctx)

	var rows []struct {
		models.ChatRoomModel
		BuyerName   string
		StoreName   string
		ProductName string
	}
	if err := db.Table("chat_rooms").
		Select(`chat_rooms.*,
			TRIM(COALESCE(users.first_name, '') || ' ' || COALESCE(users.last_name, '')) AS buyer_name,
			COALESCE(seller_profiles.store_name, '') AS store_name,
			COALESCE(products.name, '') AS product_name`).
		Joins("LEFT JOIN users ON users.id = chat_rooms.buyer_id").
		Joins("LEFT JOIN seller_profiles ON seller_profiles.id = chat_rooms.seller_id").
		Joins("LEFT JOIN products ON products.id = chat_rooms.product_id").
		Where("(chat_rooms.buyer_id = ? OR chat_rooms.seller_user_id = ?) AND chat_rooms.is_active = ?", userID, userID, true).
		Order("chat_rooms.last_message_at DESC, chat_rooms.id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]engagement.ChatRoomListing, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	roomIDs := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		roomIDs = append(roomIDs, rows[i].ID)
	}

	var unread []struct {
		ChatRoomID uuid.UUID
		N          int64
	}
	if err := db.Model(&models.ChatMessageModel{}).
		Select("chat_room_id, COUNT(*) AS n").
		Where("chat_room_id IN ? AND sender_id <> ? AND is_read = ?", roomIDs, userID, false).
		Group("chat_room_id").
		Scan(&unread).Error; err != nil {
		return nil, err
	}
	unreadByRoom := make(map[uuid.UUID]int64, len(unread))
	for _, u := range unread {
		unreadByRoom[u.ChatRoomID] = u.N
	}

	var latest []models.ChatMessageModel
	if err := db.Where("chat_room_id IN ?", roomIDs).
		Where("created_at = (SELECT MAX(m2.created_at) FROM chat_messages m2 WHERE m2.chat_room_id = chat_messages.chat_room_id)").
		Find(&latest).Error; err != nil {
		return nil, err
	}
	lastByRoom := make(map[uuid.UUID]string, len(latest))
	for _, m := range latest {
		lastByRoom[m.ChatRoomID] = m.Content
	}

	for i := range rows {
		out = append(out, engagement.ChatRoomListing{
			ChatRoom:    rows[i].ChatRoomModel.ToDomain(),
			BuyerName:   rows[i].BuyerName,
			StoreName:   rows[i].StoreName,
			ProductName: rows[i].ProductName,
			UnreadCount: unreadByRoom[rows[i].ID],
			LastMessage: lastByRoom[rows[i].ID],
		})
	}
	return out, nil
}

// AddMessage stores the message and bumps the room's last_message_at
func (r *GormChatRepository) AddMessage(ctx context.Context, room *engagement.ChatRoom, msg *engagement.ChatMessage) error {
	var model models.ChatMessageModel
	model.FromDomain(msg)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		return tx.Model(&models.ChatRoomModel{}).
			Where("id = ?", room.ID).
			UpdateColumns(map[string]any{
				"last_message_at": room.LastMessageAt,
				"updated_at":      time.Now(),
			}).Error
	})
}

// ListMessages returns the newest limit messages of a room in chronological order
func (r *GormChatRepository) ListMessages(ctx context.Context, roomID uuid.UUID, limit int) ([]*engagement.ChatMessage, error) {
	query := r.db.WithContext(ctx).
		Where("chat_room_id = ?", roomID).
		Order("created_at DESC, id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []models.ChatMessageModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*engagement.ChatMessage, len(rows))
	for i := range rows {
		out[len(rows)-1-i] = rows[i].ToDomain()
	}
	return out, nil
}

// MarkRead flags messages not sent by readerID as read and returns how many changed
func (r *GormChatRepository) MarkRead(ctx context.Context, roomID, readerID uuid.UUID, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ChatMessageModel{}).
		Where("chat_room_id = ? AND sender_id <> ? AND is_read = ?", roomID, readerID, false).
		UpdateColumns(map[string]any{"is_read": true, "read_at": at})
	return result.RowsAffected, result.Error
}

// CountReceivedBySellerBetween counts messages sent to the seller in [from, to)
func (r *GormChatRepository) CountReceivedBySellerBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ChatMessageModel{}).
		Joins("JOIN chat_rooms ON chat_rooms.id = chat_messages.chat_room_id").
		Where("chat_rooms.seller_id = ?", sellerID).
		Where("chat_messages.sender_id <> chat_rooms.seller_user_id").
		Where("chat_messages.created_at >= ? AND chat_messages.created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// Ensure GormChatRepository implements ChatRepository
var _ engagement.ChatRepository = (*GormChatRepository)(nil)
