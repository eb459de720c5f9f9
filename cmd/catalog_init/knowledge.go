package main

import (
	"context"

	"media-report/internal/logger"

	sdk "github.com/matrixorigin/moi-go-sdk"
)

func initKnowledge(ctx context.Context, client *sdk.RawClient) error {
	knowledges := []sdk.NL2SQLKnowledgeCreateRequest{
		{Type: "glossary", Key: "report", Value: []string{"a row of the reports table: what one team member did on one shift"}},
		{Type: "glossary", Key: "late report", Value: []string{"a report with is_late = 1, filed after the day it covers"}},
		{Type: "glossary", Key: "WFH", Value: []string{"work from home, stored as shift = 'wfh'"}},

		{Type: "synonyms", Key: "who/member/staff/person", Value: []string{"login name of the submitter"}, AssociateTables: []string{"reports,username"}},
		{Type: "synonyms", Key: "day/date/when", Value: []string{"day the report covers"}, AssociateTables: []string{"reports,report_date"}},
		{Type: "synonyms", Key: "department/desk/team", Value: []string{"team of the submitter"}, AssociateTables: []string{"reports,team"}},

		{Type: "logic", Key: "several reports of the same user, day and shift belong together and their task counts add up", Value: []string{"GROUP BY username, report_date, shift"}},
		{Type: "logic", Key: "task counts live in the tasks JSON column keyed by task, e.g. reel_video", Value: []string{"JSON_EXTRACT(tasks, '$.reel_video')"}},

		{Type: "case_library", Key: "how many reels did the video editors make this week", Value: []string{"SELECT SUM(JSON_EXTRACT(tasks, '$.reel_video')) FROM reports WHERE team = 'video_editor' AND report_date >= DATE_SUB(CURDATE(), INTERVAL WEEKDAY(CURDATE()) DAY)"}},
		{Type: "case_library", Key: "who filed late reports this month", Value: []string{"SELECT DISTINCT username FROM reports WHERE is_late = 1 AND report_date >= DATE_FORMAT(CURDATE(), '%Y-%m-01')"}},
		{Type: "case_library", Key: "reports per team today", Value: []string{"SELECT team, COUNT(*) FROM reports WHERE report_date = CURDATE() GROUP BY team"}},
	}

	for _, k := range knowledges {
		resp, err := client.CreateKnowledge(ctx, &k)
		if err != nil {
			if isDuplicate(err) {
				logger.Info("knowledge: already exists, skipping", "type", k.Type, "key", k.Key)
				continue
			}
			return err
		}
		logger.Info("knowledge: created", "type", k.Type, "key", k.Key, "id", resp.ID)
	}
	return nil
}
