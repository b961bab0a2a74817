package repository

import (
	"context"

	"github.com/obsidianempire/overlay/api/internal/database"
	"github.com/obsidianempire/overlay/api/internal/model"
)

// RosterRepository handles roster member and attendance history data access
type RosterRepository struct {
	db database.Database
}

// NewRosterRepository creates a new roster repository
func NewRosterRepository(db database.Database) *RosterRepository {
	return &RosterRepository{db: db}
}

// ListMembers retrieves all roster members ordered by name ascending
func (r *RosterRepository) ListMembers(ctx context.Context) ([]*model.RosterMember, error) {
	query := `SELECT * FROM roster_member ORDER BY name ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	members := make([]*model.RosterMember, 0)
	for _, item := range flattenResults(result) {
		data, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		member := &model.RosterMember{
			ID:          convertSurrealID(data["id"]),
			Name:        getString(data, "name"),
			Class:       getStringPtr(data, "class"),
			Role:        getStringPtr(data, "role"),
			PowerRating: getIntPtr(data, "power_rating"),
		}
		if t := getTime(data, "created_on"); t != nil {
			member.CreatedOn = *t
		}
		if t := getTime(data, "updated_on"); t != nil {
			member.UpdatedOn = *t
		}

		members = append(members, member)
	}

	return members, nil
}

// ListAttendance retrieves historical attendance records ordered by
// event date descending
func (r *RosterRepository) ListAttendance(ctx context.Context) ([]*model.AttendanceRecord, error) {
	query := `SELECT * FROM attendance_record ORDER BY event_date DESC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	records := make([]*model.AttendanceRecord, 0)
	for _, item := range flattenResults(result) {
		data, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		record := &model.AttendanceRecord{
			ID:         convertSurrealID(data["id"]),
			EventName:  getString(data, "event_name"),
			MemberName: getString(data, "member_name"),
			Attended:   getBool(data, "attended"),
		}
		if t := getTime(data, "event_date"); t != nil {
			record.EventDate = *t
		}
		if t := getTime(data, "recorded_on"); t != nil {
			record.RecordedOn = *t
		}

		records = append(records, record)
	}

	return records, nil
}

// flattenResults unwraps {status, result} response wrappers into a flat
// list of row items
func flattenResults(result []interface{}) []interface{} {
	items := make([]interface{}, 0, len(result))
	for _, res := range result {
		if resp, ok := res.(map[string]interface{}); ok {
			if resultData, ok := resp["result"].([]interface{}); ok {
				items = append(items, resultData...)
				continue
			}
		}
		items = append(items, res)
	}
	return items
}
