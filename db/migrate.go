package db

import (
	"database/sql"
	"fmt"
)

var schema = []struct {
	name string
	sql  string
}{
	// 每个已关闭问卷一行
	{"surveys", `
	CREATE TABLE IF NOT EXISTS surveys (
		id TEXT PRIMARY KEY,
		seq INTEGER NOT NULL,
		creator_id INTEGER NOT NULL DEFAULT 0,
		creator_name TEXT NOT NULL DEFAULT '',
		reason TEXT NOT NULL,
		respondents INTEGER NOT NULL,
		participants INTEGER NOT NULL,
		opened_at INTEGER NOT NULL,
		closed_at INTEGER NOT NULL
	);`},
	// 问卷中的题目及作答人数
	{"survey_questions", `
	CREATE TABLE IF NOT EXISTS survey_questions (
		survey_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		text TEXT NOT NULL,
		total INTEGER NOT NULL,
		PRIMARY KEY (survey_id, position)
	);`},
	// 按排名保存的选项票数
	{"survey_options", `
	CREATE TABLE IF NOT EXISTS survey_options (
		survey_id TEXT NOT NULL,
		question INTEGER NOT NULL,
		rank INTEGER NOT NULL,
		label TEXT NOT NULL,
		votes INTEGER NOT NULL,
		percent REAL NOT NULL,
		PRIMARY KEY (survey_id, question, rank)
	);`},
	// 用于顺序 ID 生成的 'id_counter' 表
	{"id_counter", `
	CREATE TABLE IF NOT EXISTS id_counter (
		counter_name TEXT PRIMARY KEY,
		current_value INTEGER NOT NULL DEFAULT 0
	);`},
	{"id_counter seed", `INSERT OR IGNORE INTO id_counter (counter_name, current_value) VALUES ('survey_seq', 0);`},
}

// createTables 如果数据库中不存在必要的表，则创建它们
func createTables(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt.sql); err != nil {
			return fmt.Errorf("db: create %s: %w", stmt.name, err)
		}
	}
	return nil
}
