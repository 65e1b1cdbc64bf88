package service

import (
	"errors"
	"sort"
	"time"

	"gupshup/chat_backend/internal/model"
	"gupshup/chat_backend/internal/repository"

	"github.com/google/uuid"
)

var errStorage = errors.New("storage failure")

// In-memory репозитории для тестов сервисного слоя.

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) EmailExists(email string) (bool, error) {
	u, _ := r.FindByEmail(email)
	return u != nil, nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Search(prompt string) ([]*model.User, error) {
	var out []*model.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeChatRepo struct {
	chats       map[uuid.UUID]*model.Chat
	memberships []model.UserChat
	failCreate  bool
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[uuid.UUID]*model.Chat)}
}

// CreateWithMembers атомарен: при ошибке не остается ни чата, ни членств.
func (r *fakeChatRepo) CreateWithMembers(chat *model.Chat, members []model.UserChat) error {
	if r.failCreate {
		return errStorage
	}

	if chat.ID == uuid.Nil {
		chat.ID = uuid.New()
	}
	r.chats[chat.ID] = chat

	for i := range members {
		members[i].ChatID = chat.ID
		if members[i].ID == uuid.Nil {
			members[i].ID = uuid.New()
		}
		r.memberships = append(r.memberships, members[i])
	}
	return nil
}

func (r *fakeChatRepo) FindByID(id uuid.UUID) (*model.Chat, error) {
	return r.chats[id], nil
}

func (r *fakeChatRepo) FindSingleBetween(user1ID, user2ID uuid.UUID) (*model.Chat, error) {
	for id, chat := range r.chats {
		if chat.Type != model.ChatTypeSingle {
			continue
		}
		var has1, has2 bool
		for _, m := range r.memberships {
			if m.ChatID != id {
				continue
			}
			if m.UserID == user1ID {
				has1 = true
			}
			if m.UserID == user2ID {
				has2 = true
			}
		}
		if has1 && has2 {
			return chat, nil
		}
	}
	return nil, nil
}

func (r *fakeChatRepo) Update(chatID uuid.UUID, updates map[string]any) (*model.Chat, error) {
	chat := r.chats[chatID]
	if chat == nil {
		return nil, errStorage
	}
	if name, ok := updates["name"].(string); ok {
		chat.Name = name
	}
	if desc, ok := updates["description"].(string); ok {
		chat.Description = desc
	}
	if image, ok := updates["image"].(string); ok {
		chat.Image = image
	}
	return chat, nil
}

func (r *fakeChatRepo) Delete(chatID uuid.UUID) (int64, error) {
	var deleted int64
	kept := r.memberships[:0]
	for _, m := range r.memberships {
		if m.ChatID == chatID {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.memberships = kept

	if _, ok := r.chats[chatID]; ok {
		delete(r.chats, chatID)
		deleted++
	}
	return deleted, nil
}

func (r *fakeChatRepo) FindMembership(chatID, userID uuid.UUID) (*model.UserChat, error) {
	for i := range r.memberships {
		if r.memberships[i].ChatID == chatID && r.memberships[i].UserID == userID {
			return &r.memberships[i], nil
		}
	}
	return nil, nil
}

func (r *fakeChatRepo) Memberships(chatID uuid.UUID) ([]model.UserChat, error) {
	var out []model.UserChat
	for _, m := range r.memberships {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) AddMember(member *model.UserChat) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	r.memberships = append(r.memberships, *member)
	return nil
}

func (r *fakeChatRepo) RemoveMember(chatID, userID uuid.UUID) (int64, error) {
	var removed int64
	kept := r.memberships[:0]
	for _, m := range r.memberships {
		if m.ChatID == chatID && m.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	r.memberships = kept
	return removed, nil
}

func (r *fakeChatRepo) GrantAdmin(chatID uuid.UUID, userIDs []uuid.UUID) (int64, error) {
	var updated int64
	for i := range r.memberships {
		if r.memberships[i].ChatID != chatID {
			continue
		}
		for _, id := range userIDs {
			if r.memberships[i].UserID == id {
				r.memberships[i].IsAdmin = true
				updated++
			}
		}
	}
	return updated, nil
}

func (r *fakeChatRepo) CountAdmins(chatID uuid.UUID) (int64, error) {
	var count int64
	for _, m := range r.memberships {
		if m.ChatID == chatID && m.IsAdmin {
			count++
		}
	}
	return count, nil
}

type fakeMessageRepo struct {
	messages   []model.Message
	inboxCalls int
	clock      time.Time
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{clock: time.Now()}
}

func (r *fakeMessageRepo) Create(msg *model.Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	// Монотонные метки времени, чтобы порядок был детерминированным
	r.clock = r.clock.Add(time.Second)
	msg.CreatedAt = r.clock
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeMessageRepo) LatestByAuthor(chatID, userID uuid.UUID) (*model.Message, error) {
	var latest *model.Message
	for i := range r.messages {
		m := &r.messages[i]
		if m.ChatID != chatID || m.UserID != userID {
			continue
		}
		if latest == nil || m.CreatedAt.After(latest.CreatedAt) {
			latest = m
		}
	}
	return latest, nil
}

func (r *fakeMessageRepo) UpdateText(messageID uuid.UUID, text string) (*model.Message, int64, error) {
	for i := range r.messages {
		if r.messages[i].ID == messageID {
			r.messages[i].Message = &text
			return &r.messages[i], 1, nil
		}
	}
	return nil, 0, nil
}

func (r *fakeMessageRepo) Delete(messageID uuid.UUID) (int64, error) {
	for i := range r.messages {
		if r.messages[i].ID == messageID {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeMessageRepo) ListByChat(chatID uuid.UUID, filter repository.MessageFilter, offset, limit int) ([]model.Message, int64, error) {
	var all []model.Message
	for _, m := range r.messages {
		if m.ChatID != chatID {
			continue
		}
		switch filter {
		case repository.FilterMessage:
			if m.Message == nil {
				continue
			}
		case repository.FilterMedia:
			if m.Media == nil {
				continue
			}
		}
		all = append(all, m)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeMessageRepo) InboxForUser(userID uuid.UUID, offset, limit int) ([]model.InboxEntry, int64, error) {
	r.inboxCalls++
	return nil, 0, nil
}

type fakeInviteRepo struct {
	tokens map[uuid.UUID]string
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{tokens: make(map[uuid.UUID]string)}
}

func (r *fakeInviteRepo) SaveToken(userID uuid.UUID, token string) error {
	r.tokens[userID] = token
	return nil
}

func (r *fakeInviteRepo) GetToken(userID uuid.UUID) (string, error) {
	return r.tokens[userID], nil
}

type fakeOTPRepo struct {
	codes map[string]string
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{codes: make(map[string]string)}
}

func (r *fakeOTPRepo) SaveCode(email, codeHash string) error {
	r.codes[email] = codeHash
	return nil
}

func (r *fakeOTPRepo) GetCode(email string) (string, error) {
	return r.codes[email], nil
}

func (r *fakeOTPRepo) DeleteCode(email string) error {
	delete(r.codes, email)
	return nil
}

type fakeBlacklistRepo struct {
	tokens map[string]bool
}

func newFakeBlacklistRepo() *fakeBlacklistRepo {
	return &fakeBlacklistRepo{tokens: make(map[string]bool)}
}

func (r *fakeBlacklistRepo) Add(token string, ttl time.Duration) error {
	if ttl > 0 {
		r.tokens[token] = true
	}
	return nil
}

func (r *fakeBlacklistRepo) Contains(token string) (bool, error) {
	return r.tokens[token], nil
}

type fakeMailer struct {
	otps    []string
	invites []string
	fail    bool
}

func (m *fakeMailer) SendOTP(to, otp string) error {
	if m.fail {
		return errStorage
	}
	m.otps = append(m.otps, otp)
	return nil
}

func (m *fakeMailer) SendInvite(chatName, token, to string, chatID uuid.UUID) error {
	if m.fail {
		return errStorage
	}
	m.invites = append(m.invites, token)
	return nil
}
