package db

import "database/sql"

// nextSurveySeq 在事务中检索当前归档序号并将其加一。
func nextSurveySeq(tx *sql.Tx) (int64, error) {
	var current int64
	err := tx.QueryRow("SELECT current_value FROM id_counter WHERE counter_name = 'survey_seq'").Scan(&current)
	if err != nil {
		return 0, err
	}

	next := current + 1
	_, err = tx.Exec("UPDATE id_counter SET current_value = ? WHERE counter_name = 'survey_seq'", next)
	if err != nil {
		return 0, err
	}
	return next, nil
}
