package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

type ChatRepository interface {
	// EnsureDirectChat finds or creates the one-to-one chat between two users.
	EnsureDirectChat(ctx context.Context, userA, userB string) (models.Chat, error)
	Participants(ctx context.Context, chatID string) ([]string, error)
	SaveMessage(ctx context.Context, chatID, senderID, content string) (models.ChatMessage, error)
	MarkMessageRead(ctx context.Context, messageID string) error
}

type chatRepository struct {
	db *sql.DB
}

func NewChatRepository(db *sql.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (c *chatRepository) EnsureDirectChat(ctx context.Context, userA, userB string) (models.Chat, error) {
	if userA == userB {
		return models.Chat{}, errors.New("cannot open a chat with yourself")
	}

	var chat models.Chat

	const find = `
		SELECT ch.id, ch.is_group, COALESCE(ch.name, ''), ch.created_at
		FROM school.chats ch
		WHERE NOT ch.is_group
		  AND EXISTS (SELECT 1 FROM school.chat_participants WHERE chat_id = ch.id AND user_id = $1)
		  AND EXISTS (SELECT 1 FROM school.chat_participants WHERE chat_id = ch.id AND user_id = $2)
		LIMIT 1`
	err := c.db.QueryRowContext(ctx, find, userA, userB).Scan(&chat.ID, &chat.IsGroup, &chat.Name, &chat.CreatedAt)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, err
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Chat{}, err
	}
	defer tx.Rollback()

	const create = `
		INSERT INTO school.chats (is_group)
		VALUES (FALSE)
		RETURNING id, is_group, COALESCE(name, ''), created_at`
	if err := tx.QueryRowContext(ctx, create).Scan(&chat.ID, &chat.IsGroup, &chat.Name, &chat.CreatedAt); err != nil {
		return models.Chat{}, err
	}

	const addParticipant = `INSERT INTO school.chat_participants (chat_id, user_id) VALUES ($1, $2)`
	for _, userID := range []string{userA, userB} {
		if _, err := tx.ExecContext(ctx, addParticipant, chat.ID, userID); err != nil {
			return models.Chat{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Chat{}, err
	}
	return chat, nil
}

func (c *chatRepository) Participants(ctx context.Context, chatID string) ([]string, error) {
	const query = `
		SELECT user_id FROM school.chat_participants
		WHERE chat_id = $1
		ORDER BY user_id`

	rows, err := c.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (c *chatRepository) SaveMessage(ctx context.Context, chatID, senderID, content string) (models.ChatMessage, error) {
	msg := models.ChatMessage{ChatID: chatID, SenderID: senderID, Content: content}

	const query = `
		INSERT INTO school.chat_messages (chat_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := c.db.QueryRowContext(ctx, query, chatID, senderID, content).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return models.ChatMessage{}, err
	}
	return msg, nil
}

func (c *chatRepository) MarkMessageRead(ctx context.Context, messageID string) error {
	const query = `
		UPDATE school.chat_messages
		SET read_at = NOW()
		WHERE id = $1 AND read_at IS NULL`
	_, err := c.db.ExecContext(ctx, query, messageID)
	return err
}
