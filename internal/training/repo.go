package training

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/sportsfusion/sportsfusion/internal/telemetry/tracing"
	"github.com/sportsfusion/sportsfusion/pkg"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrDetailNotFound  = errors.New("activity detail not found")
)

// sessionNote marks rows created through the registration flow.
const sessionNote = "registro"

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// CreateSessionAndActivities inserts one session row plus one activity row per
// given sport, all in a single transaction. The caller de-duplicates sports
// beforehand (DedupeSelectedSports); activities keep the given order.
func (r *Repo) CreateSessionAndActivities(
	ctx context.Context,
	userID string,
	sports []SelectedSport,
) (_ *Session, _ []Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.createSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("sports", len(sports)))

	now := time.Now()
	sessionID, err := pkg.NewID()
	if err != nil {
		return nil, nil, fmt.Errorf("generate session id: %w", err)
	}

	session := &Session{
		ID:        sessionID,
		UserID:    userID,
		Date:      now,
		Note:      sessionNote,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Errorf("create session %s: rollback: %s", sessionID, rbErr)
			}
		}
	}()

	if _, err = tx.Exec(
		ctx,
		`INSERT INTO sesiones (id, user_id, fecha, nota, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6);`,
		session.ID, session.UserID, session.Date, session.Note, session.CreatedAt, session.UpdatedAt,
	); err != nil {
		return nil, nil, fmt.Errorf("insert session: %w", err)
	}

	activities := make([]Activity, 0, len(sports))
	for i, sport := range sports {
		var activityID string
		activityID, err = pkg.NewID()
		if err != nil {
			return nil, nil, fmt.Errorf("generate activity id: %w", err)
		}

		activity := Activity{
			ID:        activityID,
			SessionID: session.ID,
			Mode:      Mode(sport.Category.Title),
			SportName: sport.Name,
		}

		// orden pins the selection order; listing relies on it
		if _, err = tx.Exec(
			ctx,
			`INSERT INTO actividades (id, sesion_id, modo, deporte, orden)
				VALUES ($1, $2, $3, $4, $5);`,
			activity.ID, activity.SessionID, activity.Mode, activity.SportName, i,
		); err != nil {
			return nil, nil, fmt.Errorf("insert activity [%s]: %w", sport.Name, err)
		}

		activities = append(activities, activity)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit tx: %w", err)
	}

	span.SetAttributes(attribute.String("session.id", session.ID))

	return session, activities, nil
}

// AddDetail inserts one row into the detail table matching the detail mode.
// Inserts are not idempotent: submitting the same activity twice stores two
// rows. The activity's own modo is not cross-checked here.
func (r *Repo) AddDetail(ctx context.Context, detail Detail) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.addDetail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("activity.id", detail.ActivityID))
	span.SetAttributes(attribute.String("mode", string(detail.Mode)))

	detailID, err := pkg.NewID()
	if err != nil {
		return "", fmt.Errorf("generate detail id: %w", err)
	}

	switch detail.Mode {
	case ModeStrength:
		if detail.Strength == nil {
			return "", errors.New("strength detail payload missing")
		}
		_, err = r.db.Exec(
			ctx,
			`INSERT INTO actividades_fuerza (id, actividad_id, series, repeticiones, peso)
				VALUES ($1, $2, $3, $4, $5);`,
			detailID, detail.ActivityID,
			detail.Strength.Series, detail.Strength.Repetitions, detail.Strength.Weight,
		)
	case ModeDuration:
		if detail.Duration == nil {
			return "", errors.New("duration detail payload missing")
		}
		_, err = r.db.Exec(
			ctx,
			`INSERT INTO actividades_duracion (id, actividad_id, duracion)
				VALUES ($1, $2, $3);`,
			detailID, detail.ActivityID, detail.Duration.DurationSeconds,
		)
	case ModeDistance:
		if detail.Distance == nil {
			return "", errors.New("distance detail payload missing")
		}
		_, err = r.db.Exec(
			ctx,
			`INSERT INTO actividades_distancia (id, actividad_id, distancia, tiempo, ritmo)
				VALUES ($1, $2, $3, $4, $5);`,
			detailID, detail.ActivityID,
			detail.Distance.DistanceKm, detail.Distance.TimeSeconds, detail.Distance.Pace,
		)
	default:
		return "", fmt.Errorf("unknown mode [%s]", detail.Mode)
	}
	if err != nil {
		return "", err
	}

	return detailID, nil
}

func (r *Repo) GetSession(ctx context.Context, sessionID string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.getSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, fecha, nota, created_at, updated_at
			FROM sesiones
			WHERE id = $1;`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	sessions, err := r.rows2sessions(rows)
	if err != nil {
		return nil, err
	}

	if len(sessions) != 1 {
		return nil, ErrSessionNotFound
	}

	return &sessions[0], nil
}

// ListSessions returns all sessions of a user, newest first.
func (r *Repo) ListSessions(ctx context.Context, userID string) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.listSessions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, fecha, nota, created_at, updated_at
			FROM sesiones
			WHERE user_id = $1
			ORDER BY created_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2sessions(rows)
}

// ListActivities returns the activities of one session in creation order,
// i.e. ordered by the orden index assigned at insert.
func (r *Repo) ListActivities(ctx context.Context, sessionID string) (_ []Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.listActivities")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, sesion_id, modo, deporte
			FROM actividades
			WHERE sesion_id = $1
			ORDER BY orden;`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	activities := make([]Activity, 0)
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Mode, &a.SportName); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		activities = append(activities, a)
	}

	return activities, nil
}

// GetDetail fetches the detail row of an activity for the given mode. When
// duplicates exist the first row wins. Returns ErrDetailNotFound when the
// activity has no detail yet, i.e. is not registered.
func (r *Repo) GetDetail(ctx context.Context, activityID string, mode Mode) (_ *Detail, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.getDetail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("activity.id", activityID))
	span.SetAttributes(attribute.String("mode", string(mode)))

	detail := &Detail{
		ActivityID: activityID,
		Mode:       mode,
	}

	switch mode {
	case ModeStrength:
		var d StrengthDetail
		err = r.db.QueryRow(
			ctx,
			`SELECT series, repeticiones, peso
				FROM actividades_fuerza
				WHERE actividad_id = $1
				LIMIT 1;`,
			activityID,
		).Scan(&d.Series, &d.Repetitions, &d.Weight)
		detail.Strength = &d
	case ModeDuration:
		var d DurationDetail
		err = r.db.QueryRow(
			ctx,
			`SELECT duracion
				FROM actividades_duracion
				WHERE actividad_id = $1
				LIMIT 1;`,
			activityID,
		).Scan(&d.DurationSeconds)
		detail.Duration = &d
	case ModeDistance:
		var d DistanceDetail
		err = r.db.QueryRow(
			ctx,
			`SELECT distancia, tiempo, ritmo
				FROM actividades_distancia
				WHERE actividad_id = $1
				LIMIT 1;`,
			activityID,
		).Scan(&d.DistanceKm, &d.TimeSeconds, &d.Pace)
		detail.Distance = &d
	default:
		return nil, fmt.Errorf("unknown mode [%s]", mode)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDetailNotFound
	}
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// DeleteSession removes a session with all its activities and all their
// detail rows, in one transaction. Only the owning user may delete.
func (r *Repo) DeleteSession(ctx context.Context, userID, sessionID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.deleteSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Errorf("delete session %s: rollback: %s", sessionID, rbErr)
			}
		}
	}()

	var ownerID string
	err = tx.QueryRow(
		ctx,
		`SELECT user_id FROM sesiones WHERE id = $1;`,
		sessionID,
	).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("get session owner: %w", err)
	}
	if ownerID != userID {
		return ErrSessionNotFound
	}

	rows, err := tx.Query(
		ctx,
		`SELECT id FROM actividades WHERE sesion_id = $1;`,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("get activity ids: %w", err)
	}

	var activityIDs []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("rows scan: %w", err)
		}
		activityIDs = append(activityIDs, id)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return fmt.Errorf("rows: %w", err)
	}

	// detail deletes cover every activity of the session, not just the first
	if len(activityIDs) > 0 {
		for _, table := range []string{
			"actividades_fuerza",
			"actividades_duracion",
			"actividades_distancia",
		} {
			if _, err = tx.Exec(
				ctx,
				fmt.Sprintf(`DELETE FROM %s WHERE actividad_id = ANY($1);`, table),
				activityIDs,
			); err != nil {
				return fmt.Errorf("delete details [%s]: %w", table, err)
			}
		}

		if _, err = tx.Exec(
			ctx,
			`DELETE FROM actividades WHERE sesion_id = $1;`,
			sessionID,
		); err != nil {
			return fmt.Errorf("delete activities: %w", err)
		}
	}

	if _, err = tx.Exec(
		ctx,
		`DELETE FROM sesiones WHERE id = $1;`,
		sessionID,
	); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func (r *Repo) rows2sessions(rows pgx.Rows) ([]Session, error) {
	sessions := make([]Session, 0)
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.Note, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
