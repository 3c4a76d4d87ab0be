package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/unihub/unihub-api/internal/domain/dto"
	"github.com/unihub/unihub-api/internal/domain/entity"
	"github.com/unihub/unihub-api/internal/ports/secondary"
)

// memState is the shared in-memory database behind the fake repositories.
type memState struct {
	mu sync.Mutex

	users        map[string]entity.User
	clubs        map[string]entity.Club
	memberships  map[string]entity.Membership // clubID|userID
	logs         []entity.ClubLog
	events       map[string]entity.Event
	participants map[string]entity.EventParticipant // eventID|userID
	questions    map[string]entity.EventFormQuestion
	answers      map[string]entity.EventFormAnswer // questionID|userID
	posts        map[string]entity.Post
	likes        map[string]entity.PostLike // postID|userID

	nextID int
}

func newMemState() *memState {
	return &memState{
		users:        make(map[string]entity.User),
		clubs:        make(map[string]entity.Club),
		memberships:  make(map[string]entity.Membership),
		events:       make(map[string]entity.Event),
		participants: make(map[string]entity.EventParticipant),
		questions:    make(map[string]entity.EventFormQuestion),
		answers:      make(map[string]entity.EventFormAnswer),
		posts:        make(map[string]entity.Post),
		likes:        make(map[string]entity.PostLike),
	}
}

func (s *memState) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func memberKey(clubID, userID string) string { return clubID + "|" + userID }

// fakeTx runs the function directly; the fakes have no real transactions.
// Errors to inject on consecutive attempts can be queued in errs.
type fakeTx struct {
	mu   sync.Mutex
	errs []error
}

func (t *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	if len(t.errs) > 0 {
		err := t.errs[0]
		t.errs = t.errs[1:]
		t.mu.Unlock()
		return err
	}
	t.mu.Unlock()
	return fn(ctx)
}

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []secondary.Notification
}

func (d *fakeDispatcher) Dispatch(n secondary.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, n)
}

func (d *fakeDispatcher) kinds() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	kinds := make([]string, 0, len(d.sent))
	for _, n := range d.sent {
		kinds = append(kinds, n.Kind)
	}
	return kinds
}

// --- user repository ---

type fakeUserRepo struct{ s *memState }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ExternalUID == user.ExternalUID {
			return nil, secondary.ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = r.s.id("user")
	}
	r.s.users[user.ID] = *user
	return user, nil
}

func (r *fakeUserRepo) Get(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByExternalUID(_ context.Context, externalUID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ExternalUID == externalUID {
			u := u
			return &u, nil
		}
	}
	return nil, secondary.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return nil, secondary.ErrNotFound
	}
	r.s.users[user.ID] = *user
	return user, nil
}

// --- club repository ---

type fakeClubRepo struct{ s *memState }

func (r *fakeClubRepo) Create(_ context.Context, club *entity.Club) (*entity.Club, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.clubs {
		if c.ShortName == club.ShortName {
			return nil, secondary.ErrDuplicate
		}
	}
	if club.ID == "" {
		club.ID = r.s.id("club")
	}
	r.s.clubs[club.ID] = *club
	return club, nil
}

func (r *fakeClubRepo) Get(_ context.Context, id string) (*entity.Club, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clubs[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	return &c, nil
}

func (r *fakeClubRepo) GetAll(_ context.Context) ([]entity.Club, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	clubs := make([]entity.Club, 0, len(r.s.clubs))
	for _, c := range r.s.clubs {
		clubs = append(clubs, c)
	}
	sort.Slice(clubs, func(i, j int) bool { return clubs[i].Name < clubs[j].Name })
	return clubs, nil
}

func (r *fakeClubRepo) Update(_ context.Context, club *entity.Club) (*entity.Club, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clubs[club.ID]; !ok {
		return nil, secondary.ErrNotFound
	}
	r.s.clubs[club.ID] = *club
	return club, nil
}

func (r *fakeClubRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.clubs, id)
	return nil
}

func (r *fakeClubRepo) ShortNameExists(_ context.Context, shortName string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.clubs {
		if c.ShortName == shortName {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeClubRepo) FindFiltered(_ context.Context, filter dto.ClubFilter, sortBy secondary.ClubSort, limit int) ([]dto.ClubSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []dto.ClubSummary
	for _, c := range r.s.clubs {
		if filter.University != "" && c.University != filter.University {
			continue
		}
		if filter.Faculty != "" && c.Faculty != filter.Faculty {
			continue
		}
		if filter.Department != "" && c.Department != filter.Department {
			continue
		}
		summary := dto.ClubSummary{
			ID:         c.ID,
			Name:       c.Name,
			ShortName:  c.ShortName,
			University: c.University,
			Faculty:    c.Faculty,
			Department: c.Department,
			Color:      c.Color,
		}
		for _, m := range r.s.memberships {
			if m.ClubID == c.ID && m.Status == entity.MembershipStatusApproved {
				summary.MemberCount++
			}
		}
		for _, e := range r.s.events {
			if e.ClubID == c.ID {
				summary.EventCount++
			}
		}
		out = append(out, summary)
	}
	switch sortBy {
	case secondary.ClubSortMembers:
		sort.Slice(out, func(i, j int) bool { return out[i].MemberCount > out[j].MemberCount })
	case secondary.ClubSortEvents:
		sort.Slice(out, func(i, j int) bool { return out[i].EventCount > out[j].EventCount })
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- membership repository ---

type fakeMembershipRepo struct{ s *memState }

func (r *fakeMembershipRepo) Create(_ context.Context, m *entity.Membership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := memberKey(m.ClubID, m.UserID)
	if _, ok := r.s.memberships[key]; ok {
		return secondary.ErrDuplicate
	}
	m.CreatedAt = time.Now()
	r.s.memberships[key] = *m
	return nil
}

func (r *fakeMembershipRepo) Get(_ context.Context, clubID, userID string) (*entity.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.memberships[memberKey(clubID, userID)]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	return &m, nil
}

func (r *fakeMembershipRepo) GetForUpdate(ctx context.Context, clubID, userID string) (*entity.Membership, error) {
	return r.Get(ctx, clubID, userID)
}

func (r *fakeMembershipRepo) Update(_ context.Context, m *entity.Membership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := memberKey(m.ClubID, m.UserID)
	if _, ok := r.s.memberships[key]; !ok {
		return secondary.ErrNotFound
	}
	r.s.memberships[key] = *m
	return nil
}

func (r *fakeMembershipRepo) Delete(_ context.Context, clubID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.memberships, memberKey(clubID, userID))
	return nil
}

func (r *fakeMembershipRepo) GetByClubAndStatus(_ context.Context, clubID string, status entity.MembershipStatus) ([]dto.ClubMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var members []dto.ClubMember
	for _, m := range r.s.memberships {
		if m.ClubID != clubID || m.Status != status {
			continue
		}
		u := r.s.users[m.UserID]
		members = append(members, dto.ClubMember{
			UserID:   m.UserID,
			ClubID:   m.ClubID,
			Name:     u.Name,
			Email:    u.Email,
			Role:     m.Role,
			Status:   m.Status,
			JoinedAt: m.CreatedAt,
		})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].UserID < members[j].UserID })
	return members, nil
}

func (r *fakeMembershipRepo) DeleteByClub(_ context.Context, clubID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, m := range r.s.memberships {
		if m.ClubID == clubID {
			delete(r.s.memberships, key)
		}
	}
	return nil
}

// --- club log repository ---

type fakeLogRepo struct{ s *memState }

func (r *fakeLogRepo) Create(_ context.Context, log *entity.ClubLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if log.ID == "" {
		log.ID = r.s.id("log")
	}
	log.CreatedAt = time.Now()
	r.s.logs = append(r.s.logs, *log)
	return nil
}

func (r *fakeLogRepo) Get(_ context.Context, id string) (*entity.ClubLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.logs {
		if l.ID == id {
			l := l
			return &l, nil
		}
	}
	return nil, secondary.ErrNotFound
}

func (r *fakeLogRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, l := range r.s.logs {
		if l.ID == id {
			r.s.logs = append(r.s.logs[:i], r.s.logs[i+1:]...)
			return nil
		}
	}
	return secondary.ErrNotFound
}

func (r *fakeLogRepo) GetByClub(_ context.Context, clubID string) ([]dto.ClubLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var entries []dto.ClubLogEntry
	for _, l := range r.s.logs {
		if l.ClubID != clubID {
			continue
		}
		entries = append(entries, dto.ClubLogEntry{
			ID:        l.ID,
			ActorName: r.s.users[l.ActorID].Name,
			Action:    l.Action,
			CreatedAt: l.CreatedAt,
		})
	}
	return entries, nil
}

func (r *fakeLogRepo) DeleteByClub(_ context.Context, clubID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.logs[:0]
	for _, l := range r.s.logs {
		if l.ClubID != clubID {
			kept = append(kept, l)
		}
	}
	r.s.logs = kept
	return nil
}

// --- event repository ---

type fakeEventRepo struct{ s *memState }

func (r *fakeEventRepo) Create(_ context.Context, event *entity.Event) (*entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if event.ID == "" {
		event.ID = r.s.id("event")
	}
	event.CreatedAt = time.Now()
	r.s.events[event.ID] = *event
	return event, nil
}

func (r *fakeEventRepo) Get(_ context.Context, id string) (*entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	return &e, nil
}

func (r *fakeEventRepo) GetByClub(_ context.Context, clubID string) ([]entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var events []entity.Event
	for _, e := range r.s.events {
		if e.ClubID == clubID {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartTime.Before(events[j].StartTime) })
	return events, nil
}

func (r *fakeEventRepo) GetUpcoming(_ context.Context, until time.Time) ([]entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	var events []entity.Event
	for _, e := range r.s.events {
		if e.StartTime.After(now) && !e.StartTime.After(until) {
			events = append(events, e)
		}
	}
	return events, nil
}

func (r *fakeEventRepo) GetPast(_ context.Context) ([]entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	var events []entity.Event
	for _, e := range r.s.events {
		if !e.StartTime.After(now) {
			events = append(events, e)
		}
	}
	return events, nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.events, id)
	return nil
}

func (r *fakeEventRepo) DeleteByClub(_ context.Context, clubID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, e := range r.s.events {
		if e.ClubID == clubID {
			delete(r.s.events, id)
		}
	}
	return nil
}

func (r *fakeEventRepo) AddParticipant(_ context.Context, p *entity.EventParticipant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := p.EventID + "|" + p.UserID
	if _, ok := r.s.participants[key]; ok {
		return secondary.ErrDuplicate
	}
	r.s.participants[key] = *p
	return nil
}

func (r *fakeEventRepo) RemoveParticipant(_ context.Context, eventID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := eventID + "|" + userID
	if _, ok := r.s.participants[key]; !ok {
		return secondary.ErrNotFound
	}
	delete(r.s.participants, key)
	return nil
}

func (r *fakeEventRepo) Participants(_ context.Context, eventID string) ([]entity.EventParticipant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.EventParticipant
	for _, p := range r.s.participants {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) DeleteParticipantsByClubUser(_ context.Context, clubID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, p := range r.s.participants {
		if p.UserID != userID {
			continue
		}
		if e, ok := r.s.events[p.EventID]; ok && e.ClubID == clubID {
			delete(r.s.participants, key)
		}
	}
	return nil
}

func (r *fakeEventRepo) DeleteParticipantsByClub(_ context.Context, clubID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, p := range r.s.participants {
		if e, ok := r.s.events[p.EventID]; ok && e.ClubID == clubID {
			delete(r.s.participants, key)
		}
	}
	return nil
}

func (r *fakeEventRepo) DeleteParticipantsByEvent(_ context.Context, eventID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, p := range r.s.participants {
		if p.EventID == eventID {
			delete(r.s.participants, key)
		}
	}
	return nil
}

func (r *fakeEventRepo) CreateFormQuestions(_ context.Context, questions []entity.EventFormQuestion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, q := range questions {
		if q.ID == "" {
			q.ID = r.s.id("question")
		}
		r.s.questions[q.ID] = q
	}
	return nil
}

func (r *fakeEventRepo) GetFormQuestions(_ context.Context, eventID string) ([]entity.EventFormQuestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.EventFormQuestion
	for _, q := range r.s.questions {
		if q.EventID == eventID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeEventRepo) CreateFormAnswers(_ context.Context, answers []entity.EventFormAnswer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range answers {
		key := a.QuestionID + "|" + a.UserID
		if _, ok := r.s.answers[key]; ok {
			return secondary.ErrDuplicate
		}
		a.CreatedAt = time.Now()
		r.s.answers[key] = a
	}
	return nil
}

func (r *fakeEventRepo) GetFormAnswers(_ context.Context, eventID string) ([]dto.FormAnswerRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []dto.FormAnswerRow
	for _, a := range r.s.answers {
		if a.EventID != eventID {
			continue
		}
		rows = append(rows, dto.FormAnswerRow{
			QuestionID: a.QuestionID,
			UserName:   r.s.users[a.UserID].Name,
			Text:       a.Text,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].UserName < rows[j].UserName })
	return rows, nil
}

func (r *fakeEventRepo) DeleteAnswersByClubUser(_ context.Context, clubID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, a := range r.s.answers {
		if a.UserID != userID {
			continue
		}
		if e, ok := r.s.events[a.EventID]; ok && e.ClubID == clubID {
			delete(r.s.answers, key)
		}
	}
	return nil
}

func (r *fakeEventRepo) DeleteAnswersByEvent(_ context.Context, eventID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, a := range r.s.answers {
		if a.EventID == eventID {
			delete(r.s.answers, key)
		}
	}
	return nil
}

func (r *fakeEventRepo) DeleteAnswersByClub(_ context.Context, clubID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, a := range r.s.answers {
		if e, ok := r.s.events[a.EventID]; ok && e.ClubID == clubID {
			delete(r.s.answers, key)
		}
	}
	return nil
}

func (r *fakeEventRepo) DeleteQuestionsByEvent(_ context.Context, eventID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, q := range r.s.questions {
		if q.EventID == eventID {
			delete(r.s.questions, id)
		}
	}
	return nil
}

func (r *fakeEventRepo) DeleteQuestionsByClub(_ context.Context, clubID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, q := range r.s.questions {
		if e, ok := r.s.events[q.EventID]; ok && e.ClubID == clubID {
			delete(r.s.questions, id)
		}
	}
	return nil
}

// --- post repository ---

type fakePostRepo struct{ s *memState }

func (r *fakePostRepo) Create(_ context.Context, post *entity.Post) (*entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if post.ID == "" {
		post.ID = r.s.id("post")
	}
	post.CreatedAt = time.Now()
	r.s.posts[post.ID] = *post
	return post, nil
}

func (r *fakePostRepo) Get(_ context.Context, id string) (*entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	return &p, nil
}

func (r *fakePostRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.posts, id)
	return nil
}

func (r *fakePostRepo) DeleteByClub(_ context.Context, clubID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, p := range r.s.posts {
		if p.ClubID == clubID {
			delete(r.s.posts, id)
		}
	}
	return nil
}

func (r *fakePostRepo) summaries(currentUserID string, match func(entity.Post) bool) []dto.PostSummary {
	var out []dto.PostSummary
	for _, p := range r.s.posts {
		if !match(p) {
			continue
		}
		var likeCount int64
		liked := false
		for _, l := range r.s.likes {
			if l.PostID != p.ID {
				continue
			}
			likeCount++
			if l.UserID == currentUserID {
				liked = true
			}
		}
		out = append(out, dto.PostSummary{
			ID:                 p.ID,
			ClubID:             p.ClubID,
			ClubName:           r.s.clubs[p.ClubID].Name,
			CreatorName:        r.s.users[p.CreatorID].Name,
			Description:        p.Description,
			CreatedAt:          p.CreatedAt,
			LikeCount:          likeCount,
			LikedByCurrentUser: liked,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakePostRepo) GetSummariesByClub(_ context.Context, clubID, currentUserID string) ([]dto.PostSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.summaries(currentUserID, func(p entity.Post) bool { return p.ClubID == clubID }), nil
}

func (r *fakePostRepo) GetFeed(_ context.Context, userID string) ([]dto.PostSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	approved := make(map[string]bool)
	for _, m := range r.s.memberships {
		if m.UserID == userID && m.Status == entity.MembershipStatusApproved {
			approved[m.ClubID] = true
		}
	}
	return r.summaries(userID, func(p entity.Post) bool { return approved[p.ClubID] }), nil
}

func (r *fakePostRepo) LikeExists(_ context.Context, postID, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.likes[postID+"|"+userID]
	return ok, nil
}

func (r *fakePostRepo) AddLike(_ context.Context, like *entity.PostLike) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := like.PostID + "|" + like.UserID
	if _, ok := r.s.likes[key]; ok {
		return secondary.ErrDuplicate
	}
	r.s.likes[key] = *like
	return nil
}

func (r *fakePostRepo) RemoveLike(_ context.Context, postID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.likes, postID+"|"+userID)
	return nil
}

func (r *fakePostRepo) CountLikes(_ context.Context, postID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, l := range r.s.likes {
		if l.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (r *fakePostRepo) DeleteLikesByPost(_ context.Context, postID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, l := range r.s.likes {
		if l.PostID == postID {
			delete(r.s.likes, key)
		}
	}
	return nil
}

func (r *fakePostRepo) DeleteLikesByClub(_ context.Context, clubID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, l := range r.s.likes {
		if p, ok := r.s.posts[l.PostID]; ok && p.ClubID == clubID {
			delete(r.s.likes, key)
		}
	}
	return nil
}

// --- environment ---

type testEnv struct {
	state      *memState
	tx         *fakeTx
	dispatcher *fakeDispatcher

	userRepo   *fakeUserRepo
	clubRepo   *fakeClubRepo
	memberRepo *fakeMembershipRepo
	logRepo    *fakeLogRepo
	eventRepo  *fakeEventRepo
	postRepo   *fakePostRepo

	auth        *AuthService
	logs        *ClubLogService
	memberships *MembershipService
	clubs       *ClubService
	events      *EventService
	posts       *PostService
	users       *UserService
}

func newTestEnv() *testEnv {
	state := newMemState()
	env := &testEnv{
		state:      state,
		tx:         &fakeTx{},
		dispatcher: &fakeDispatcher{},
		userRepo:   &fakeUserRepo{s: state},
		clubRepo:   &fakeClubRepo{s: state},
		memberRepo: &fakeMembershipRepo{s: state},
		logRepo:    &fakeLogRepo{s: state},
		eventRepo:  &fakeEventRepo{s: state},
		postRepo:   &fakePostRepo{s: state},
	}

	env.auth = NewAuthService(env.userRepo, env.memberRepo)
	env.logs = NewClubLogService(env.tx, env.auth, env.logRepo)
	env.memberships = NewMembershipService(env.tx, env.auth, env.logs, env.userRepo, env.clubRepo, env.memberRepo, env.eventRepo, env.dispatcher)
	env.clubs = NewClubService(env.tx, env.auth, env.logs, env.clubRepo, env.memberRepo, env.eventRepo, env.postRepo, env.logRepo)
	env.events = NewEventService(env.tx, env.auth, env.logs, env.eventRepo, env.clubRepo, env.dispatcher, "https://unihub.test")
	env.posts = NewPostService(env.tx, env.auth, env.logs, env.postRepo, env.clubRepo, env.dispatcher)
	env.users = NewUserService(env.tx, env.userRepo)
	return env
}

func (e *testEnv) addUser(uid, name string) *entity.User {
	user, err := e.userRepo.Create(context.Background(), &entity.User{
		ExternalUID: uid,
		Name:        name,
		Email:       strings.ToLower(name) + "@example.edu",
	})
	if err != nil {
		panic(err)
	}
	return user
}

func (e *testEnv) addClub(name, shortName string) *entity.Club {
	club, err := e.clubRepo.Create(context.Background(), &entity.Club{
		Name:      name,
		ShortName: shortName,
	})
	if err != nil {
		panic(err)
	}
	return club
}

func (e *testEnv) addMembership(clubID, userID string, role entity.Role, status entity.MembershipStatus) {
	err := e.memberRepo.Create(context.Background(), &entity.Membership{
		UserID: userID,
		ClubID: clubID,
		Role:   role,
		Status: status,
	})
	if err != nil {
		panic(err)
	}
}

func (e *testEnv) membership(clubID, userID string) *entity.Membership {
	m, err := e.memberRepo.Get(context.Background(), clubID, userID)
	if err != nil {
		return nil
	}
	return m
}

func (e *testEnv) ownerCount(clubID string) int {
	e.state.mu.Lock()
	defer e.state.mu.Unlock()
	count := 0
	for _, m := range e.state.memberships {
		if m.ClubID == clubID && m.Role == entity.RoleOwner && m.Status == entity.MembershipStatusApproved {
			count++
		}
	}
	return count
}

func (e *testEnv) lastLog(clubID string) string {
	e.state.mu.Lock()
	defer e.state.mu.Unlock()
	last := ""
	for _, l := range e.state.logs {
		if l.ClubID == clubID {
			last = l.Action
		}
	}
	return last
}
