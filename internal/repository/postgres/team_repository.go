package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/profilematch/backend/internal/domain"
	"github.com/profilematch/backend/internal/repository"
)

type teamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) repository.TeamRepository {
	return &teamRepository{db: db}
}

// inTx runs fn inside a transaction, rolling back on error.
func (r *teamRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *teamRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	query := `
		SELECT e.id, e.name, e.description, e.start_time, e.end_time, e.location,
			COUNT(ep.id) AS participant_count
		FROM events e
		LEFT JOIN event_participants ep ON ep.event_id = e.id
		GROUP BY e.id
		ORDER BY e.start_time`

	events := []domain.Event{}
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *teamRepository) GetEvent(ctx context.Context, eventID uuid.UUID) (*domain.Event, error) {
	query := `
		SELECT e.id, e.name, e.description, e.start_time, e.end_time, e.location,
			COUNT(ep.id) AS participant_count
		FROM events e
		LEFT JOIN event_participants ep ON ep.event_id = e.id
		WHERE e.id = $1
		GROUP BY e.id`

	var event domain.Event
	if err := r.db.GetContext(ctx, &event, query, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *teamRepository) GetParticipant(ctx context.Context, eventID, userID uuid.UUID) (*domain.EventParticipant, error) {
	query := `
		SELECT id, event_id, user_id, team_id
		FROM event_participants
		WHERE event_id = $1 AND user_id = $2`

	var p domain.EventParticipant
	if err := r.db.GetContext(ctx, &p, query, eventID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotEventParticipant
		}
		return nil, err
	}
	return &p, nil
}

func (r *teamRepository) GetParticipantByUser(ctx context.Context, userID uuid.UUID) (*domain.EventParticipant, error) {
	query := `
		SELECT id, event_id, user_id, team_id
		FROM event_participants
		WHERE user_id = $1
		ORDER BY joined_at DESC
		LIMIT 1`

	var p domain.EventParticipant
	if err := r.db.GetContext(ctx, &p, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotEventParticipant
		}
		return nil, err
	}
	return &p, nil
}

func (r *teamRepository) JoinEvent(ctx context.Context, eventID, userID uuid.UUID) error {
	query := `INSERT INTO event_participants (event_id, user_id) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, eventID, userID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyJoinedEvent
		}
		if isForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		return err
	}
	return nil
}

type teamScan struct {
	ID           uuid.UUID `db:"id"`
	EventID      uuid.UUID `db:"event_id"`
	Name         string    `db:"name"`
	SaySomething *string   `db:"say_something"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r *teamRepository) GetTeam(ctx context.Context, teamID uuid.UUID) (*domain.Team, error) {
	query := `
		SELECT id, event_id, name, say_something, created_at
		FROM teams
		WHERE id = $1`

	var row teamScan
	if err := r.db.GetContext(ctx, &row, query, teamID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}

	memberIDs := []uuid.UUID{}
	memberQuery := `SELECT user_id FROM team_members WHERE team_id = $1 ORDER BY joined_at`
	if err := r.db.SelectContext(ctx, &memberIDs, memberQuery, teamID); err != nil {
		return nil, err
	}

	return &domain.Team{
		ID:           row.ID,
		EventID:      row.EventID,
		Name:         row.Name,
		SaySomething: row.SaySomething,
		MemberIDs:    memberIDs,
		MemberCount:  len(memberIDs),
		CreatedAt:    row.CreatedAt,
	}, nil
}

func (r *teamRepository) CreateTeam(ctx context.Context, eventID, creatorID uuid.UUID, name string, saySomething *string) (*domain.Team, error) {
	var teamID uuid.UUID
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		insertTeam := `
			INSERT INTO teams (event_id, name, say_something, created_by)
			VALUES ($1, $2, $3, $4)
			RETURNING id`
		if err := tx.GetContext(ctx, &teamID, insertTeam, eventID, name, saySomething, creatorID); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrEventNotFound
			}
			return err
		}

		insertMember := `INSERT INTO team_members (team_id, event_id, user_id) VALUES ($1, $2, $3)`
		if _, err := tx.ExecContext(ctx, insertMember, teamID, eventID, creatorID); err != nil {
			return err
		}

		stamp := `UPDATE event_participants SET team_id = $1 WHERE event_id = $2 AND user_id = $3`
		if _, err := tx.ExecContext(ctx, stamp, teamID, eventID, creatorID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetTeam(ctx, teamID)
}

func (r *teamRepository) AddMember(ctx context.Context, teamID, eventID, userID uuid.UUID) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		insert := `INSERT INTO team_members (team_id, event_id, user_id) VALUES ($1, $2, $3)`
		if _, err := tx.ExecContext(ctx, insert, teamID, eventID, userID); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrAlreadyTeamMember
			}
			if isForeignKeyViolation(err) {
				return domain.ErrTeamNotFound
			}
			return err
		}

		stamp := `UPDATE event_participants SET team_id = $1 WHERE event_id = $2 AND user_id = $3`
		if _, err := tx.ExecContext(ctx, stamp, teamID, eventID, userID); err != nil {
			return err
		}
		return nil
	})
}

func (r *teamRepository) RemoveMember(ctx context.Context, teamID, eventID, userID uuid.UUID) (bool, error) {
	var teamDeleted bool
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		del := `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`
		result, err := tx.ExecContext(ctx, del, teamID, userID)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrNotInTeam
		}

		unstamp := `UPDATE event_participants SET team_id = NULL WHERE event_id = $1 AND user_id = $2`
		if _, err := tx.ExecContext(ctx, unstamp, eventID, userID); err != nil {
			return err
		}

		var remaining int
		count := `SELECT COUNT(*) FROM team_members WHERE team_id = $1`
		if err := tx.GetContext(ctx, &remaining, count, teamID); err != nil {
			return err
		}
		if remaining == 0 {
			if _, err := tx.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, teamID); err != nil {
				return err
			}
			teamDeleted = true
		}
		return nil
	})
	return teamDeleted, err
}

type rosterMemberRow struct {
	UserID          uuid.UUID     `db:"user_id"`
	Nickname        *string       `db:"nickname"`
	SelfDescription *string       `db:"self_description"`
	SkillIDs        pq.Int64Array `db:"skill_ids"`
}

func (r *teamRepository) GetRoster(ctx context.Context, teamID uuid.UUID) (*domain.TeamRoster, error) {
	var teamName string
	if err := r.db.GetContext(ctx, &teamName, `SELECT name FROM teams WHERE id = $1`, teamID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}

	memberQuery := `
		SELECT tm.user_id, p.display_name AS nickname, p.bio AS self_description,
			COALESCE(tm.skills, '{}') AS skill_ids
		FROM team_members tm
		LEFT JOIN user_profiles p ON p.user_id = tm.user_id AND p.deleted_at IS NULL
		WHERE tm.team_id = $1
		ORDER BY tm.joined_at`

	rows := []rosterMemberRow{}
	if err := r.db.SelectContext(ctx, &rows, memberQuery, teamID); err != nil {
		return nil, err
	}

	skillNames, err := r.skillNames(ctx, rows)
	if err != nil {
		return nil, err
	}

	members := make([]domain.TeamMember, 0, len(rows))
	for _, row := range rows {
		skills := make([]string, 0, len(row.SkillIDs))
		for _, id := range row.SkillIDs {
			if name, ok := skillNames[int(id)]; ok {
				skills = append(skills, name)
			}
		}
		members = append(members, domain.TeamMember{
			UserID:          row.UserID,
			Nickname:        deref(row.Nickname),
			SelfDescription: row.SelfDescription,
			Skills:          skills,
		})
	}

	return &domain.TeamRoster{
		TeamID:      teamID,
		TeamName:    teamName,
		Members:     members,
		MemberCount: len(members),
	}, nil
}

// skillNames resolves every skill id referenced by the roster in one
// query.
func (r *teamRepository) skillNames(ctx context.Context, rows []rosterMemberRow) (map[int]string, error) {
	seen := map[int]struct{}{}
	ids := []int64{}
	for _, row := range rows {
		for _, id := range row.SkillIDs {
			if _, ok := seen[int(id)]; !ok {
				seen[int(id)] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return map[int]string{}, nil
	}

	type skillRow struct {
		ID   int    `db:"id"`
		Name string `db:"name"`
	}
	b := newCondBuilder()
	b.In("id", ids)

	skills := []skillRow{}
	query := `SELECT id, name FROM skills` + b.Where()
	if err := r.db.SelectContext(ctx, &skills, query, b.Args()...); err != nil {
		return nil, err
	}

	names := make(map[int]string, len(skills))
	for _, s := range skills {
		names[s.ID] = s.Name
	}
	return names, nil
}

func (r *teamRepository) GetMemberSkillIDs(ctx context.Context, teamID, userID uuid.UUID) ([]int, error) {
	var ids pq.Int64Array
	query := `SELECT COALESCE(skills, '{}') FROM team_members WHERE team_id = $1 AND user_id = $2`
	if err := r.db.GetContext(ctx, &ids, query, teamID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotInTeam
		}
		return nil, err
	}

	out := make([]int, 0, len(ids))
	for _, id := range ids {
		out = append(out, int(id))
	}
	return out, nil
}

func (r *teamRepository) SetMemberSkillIDs(ctx context.Context, teamID, userID uuid.UUID, skillIDs []int) error {
	query := `UPDATE team_members SET skills = $1 WHERE team_id = $2 AND user_id = $3`

	result, err := r.db.ExecContext(ctx, query, pq.Array(skillIDs), teamID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotInTeam
	}
	return nil
}

func (r *teamRepository) FilterUnknownSkillIDs(ctx context.Context, skillIDs []int) ([]int, error) {
	if len(skillIDs) == 0 {
		return nil, nil
	}

	b := newCondBuilder()
	b.In("id", skillIDs)

	known := []int{}
	query := `SELECT id FROM skills` + b.Where()
	if err := r.db.SelectContext(ctx, &known, query, b.Args()...); err != nil {
		return nil, err
	}

	knownSet := make(map[int]struct{}, len(known))
	for _, id := range known {
		knownSet[id] = struct{}{}
	}

	unknown := []int{}
	for _, id := range skillIDs {
		if _, ok := knownSet[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	return unknown, nil
}

const postColumns = `
	tp.id, tp.team_id, tp.author_id, p.display_name AS author_name,
	tp.title, tp.content, tp.created_at`

type postRow struct {
	ID         uuid.UUID `db:"id"`
	TeamID     uuid.UUID `db:"team_id"`
	AuthorID   uuid.UUID `db:"author_id"`
	AuthorName *string   `db:"author_name"`
	Title      string    `db:"title"`
	Content    string    `db:"content"`
	CreatedAt  time.Time `db:"created_at"`
}

func (row *postRow) toDomain() domain.TeamPost {
	return domain.TeamPost{
		ID:         row.ID,
		TeamID:     row.TeamID,
		AuthorID:   row.AuthorID,
		AuthorName: row.AuthorName,
		Title:      row.Title,
		Content:    row.Content,
		CreatedAt:  row.CreatedAt,
	}
}

func (r *teamRepository) CreatePost(ctx context.Context, teamID, authorID uuid.UUID, title, content string) (*domain.TeamPost, error) {
	var postID uuid.UUID
	query := `
		INSERT INTO team_posts (team_id, author_id, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	if err := r.db.GetContext(ctx, &postID, query, teamID, authorID, title, content); err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}

	return r.GetPost(ctx, postID)
}

func (r *teamRepository) ListPosts(ctx context.Context, teamID uuid.UUID) ([]domain.TeamPost, error) {
	query := `SELECT` + postColumns + `
		FROM team_posts tp
		LEFT JOIN user_profiles p ON p.user_id = tp.author_id AND p.deleted_at IS NULL
		WHERE tp.team_id = $1 AND tp.deleted_at IS NULL
		ORDER BY tp.created_at DESC`

	rows := []postRow{}
	if err := r.db.SelectContext(ctx, &rows, query, teamID); err != nil {
		return nil, err
	}

	posts := make([]domain.TeamPost, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].toDomain())
	}
	return posts, nil
}

func (r *teamRepository) GetPost(ctx context.Context, postID uuid.UUID) (*domain.TeamPost, error) {
	query := `SELECT` + postColumns + `
		FROM team_posts tp
		LEFT JOIN user_profiles p ON p.user_id = tp.author_id AND p.deleted_at IS NULL
		WHERE tp.id = $1 AND tp.deleted_at IS NULL`

	var row postRow
	if err := r.db.GetContext(ctx, &row, query, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	post := row.toDomain()
	return &post, nil
}

func (r *teamRepository) UpdatePost(ctx context.Context, postID uuid.UUID, input repository.UpdateTeamPostInput) (*domain.TeamPost, error) {
	b := newUpdateBuilder()
	b.SetOpt("title", input.Title).
		SetOpt("content", input.Content)

	if b.Empty() {
		return nil, domain.ErrEmptyUpdate
	}

	clause, next := b.Clause()
	query := `UPDATE team_posts ` + clause + `, updated_at = NOW()
		WHERE id = $` + itoa(next) + ` AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, b.Args(postID)...)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrPostNotFound
	}

	return r.GetPost(ctx, postID)
}

func (r *teamRepository) SoftDeletePost(ctx context.Context, postID uuid.UUID) error {
	query := `UPDATE team_posts SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

const recommendationColumns = `
	tr.id, tr.team_id, t.name AS team_name, tr.recommendation_reason,
	tr.algorithm_score, tr.expires_at, tr.created_at`

type recommendationRow struct {
	ID                   uuid.UUID `db:"id"`
	TeamID               uuid.UUID `db:"team_id"`
	TeamName             string    `db:"team_name"`
	RecommendationReason *string   `db:"recommendation_reason"`
	AlgorithmScore       *float64  `db:"algorithm_score"`
	ExpiresAt            time.Time `db:"expires_at"`
	CreatedAt            time.Time `db:"created_at"`
}

func (row *recommendationRow) toDomain() domain.TeamRecommendation {
	return domain.TeamRecommendation{
		ID:                   row.ID,
		TeamID:               row.TeamID,
		TeamName:             row.TeamName,
		RecommendationReason: row.RecommendationReason,
		AlgorithmScore:       row.AlgorithmScore,
		ExpiresAt:            row.ExpiresAt,
		CreatedAt:            row.CreatedAt,
	}
}

func (r *teamRepository) ListRecommendations(ctx context.Context, userID uuid.UUID) ([]domain.TeamRecommendation, error) {
	query := `SELECT` + recommendationColumns + `
		FROM team_recommendations tr
		JOIN teams t ON t.id = tr.team_id
		WHERE tr.user_id = $1 AND tr.is_active = true AND tr.expires_at > NOW()
		ORDER BY tr.algorithm_score DESC NULLS LAST, tr.created_at DESC`

	rows := []recommendationRow{}
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}

	recommendations := make([]domain.TeamRecommendation, 0, len(rows))
	for i := range rows {
		recommendations = append(recommendations, rows[i].toDomain())
	}
	return recommendations, nil
}

func (r *teamRepository) GetRecommendation(ctx context.Context, recommendationID, userID uuid.UUID) (*domain.TeamRecommendation, error) {
	query := `SELECT` + recommendationColumns + `
		FROM team_recommendations tr
		JOIN teams t ON t.id = tr.team_id
		WHERE tr.id = $1 AND tr.user_id = $2 AND tr.is_active = true`

	var row recommendationRow
	if err := r.db.GetContext(ctx, &row, query, recommendationID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecommendationNotFound
		}
		return nil, err
	}
	rec := row.toDomain()
	return &rec, nil
}

func (r *teamRepository) SetRecommendationStatus(ctx context.Context, recommendationID uuid.UUID, status string) error {
	query := `
		UPDATE team_recommendations
		SET status = $1, is_active = false, responded_at = NOW()
		WHERE id = $2 AND is_active = true`

	result, err := r.db.ExecContext(ctx, query, status, recommendationID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrRecommendationNotFound
	}
	return nil
}
