package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sebasblancogonz/bulkup/internal/models"
)

// Client talks to the remote weight service. It owns the transport details
// (encoding, auth, timeouts); the sync engine only sees records.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Wire shape of a weight record. SetNumber is optional on the wire: older
// backends sent sets as a bare positional list.
type weightRecordDTO struct {
	UserID        string        `json:"user_id"`
	PlanID        string        `json:"plan_id"`
	Day           string        `json:"day"`
	ExerciseName  string        `json:"exercise_name"`
	ExerciseIndex int           `json:"exercise_index"`
	WeekStart     string        `json:"week_start"`
	Sets          []setEntryDTO `json:"sets"`
	Note          string        `json:"note"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type setEntryDTO struct {
	SetNumber *int    `json:"set_number,omitempty"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
}

// FetchWeights loads all weight records of the user for one week.
func (c *Client) FetchWeights(ctx context.Context, userID, weekStart string) ([]models.WeightRecord, error) {
	endpoint := fmt.Sprintf("%s/users/%s/weights?week=%s",
		c.baseURL, url.PathEscape(userID), url.QueryEscape(weekStart))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to build fetch request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch weights for week %s: %w", weekStart, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Fetch weights for week %s: unexpected status %d", weekStart, resp.StatusCode)
	}

	var dtos []weightRecordDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("Failed to decode weights response: %w", err)
	}

	records := make([]models.WeightRecord, 0, len(dtos))
	for _, dto := range dtos {
		records = append(records, dto.toRecord())
	}
	return records, nil
}

// PushWeights uploads one record. The caller flips the record's needs-sync
// flag only after this returns nil.
func (c *Client) PushWeights(ctx context.Context, rec *models.WeightRecord) error {
	dto := toDTO(rec)
	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("Failed to marshal weight record: %w", err)
	}

	endpoint := fmt.Sprintf("%s/users/%s/weights", c.baseURL, url.PathEscape(rec.UserID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("Failed to build push request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("Failed to push weight record: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("Push weight record: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
}

func (dto weightRecordDTO) toRecord() models.WeightRecord {
	rec := models.WeightRecord{
		UserID:        dto.UserID,
		PlanID:        dto.PlanID,
		Day:           dto.Day,
		ExerciseName:  dto.ExerciseName,
		ExerciseIndex: dto.ExerciseIndex,
		WeekStart:     dto.WeekStart,
		Note:          dto.Note,
		UpdatedAt:     dto.UpdatedAt,
	}
	for pos, set := range dto.Sets {
		num := pos
		if set.SetNumber != nil {
			num = *set.SetNumber
		}
		rec.Sets = append(rec.Sets, models.WeightEntry{
			SetNumber: num,
			Weight:    set.Weight,
			Reps:      set.Reps,
		})
	}
	return rec
}

func toDTO(rec *models.WeightRecord) weightRecordDTO {
	dto := weightRecordDTO{
		UserID:        rec.UserID,
		PlanID:        rec.PlanID,
		Day:           rec.Day,
		ExerciseName:  rec.ExerciseName,
		ExerciseIndex: rec.ExerciseIndex,
		WeekStart:     rec.WeekStart,
		Note:          rec.Note,
		UpdatedAt:     rec.UpdatedAt,
	}
	for _, set := range rec.Sets {
		num := set.SetNumber
		dto.Sets = append(dto.Sets, setEntryDTO{
			SetNumber: &num,
			Weight:    set.Weight,
			Reps:      set.Reps,
		})
	}
	return dto
}
