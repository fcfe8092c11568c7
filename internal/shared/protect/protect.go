package protect

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/YangWanjun/ebusiness/internal/shared/bizerr"
)

// relation 削除をブロックする参照元
type relation struct {
	table  string
	column string
	label  string
}

// registry エンティティ種別ごとの保護関係。参照が残っている間は削除できない。
// 論理削除済みの参照はブロックしない。
var registry = map[string][]relation{
	"client": {
		{"eb_project", "client_id", "案件"},
		{"eb_clientorder", "client_id", "注文書"},
		{"eb_clientmember", "client_id", "取引先担当者"},
	},
	"project": {
		{"eb_projectmember", "project_id", "案件メンバー"},
		{"eb_projectrequest", "project_id", "請求書"},
	},
	"member": {
		{"eb_projectmember", "member_id", "案件アサイン"},
		{"eb_bp_contract", "member_id", "ＢＰ契約"},
	},
	"partner": {
		{"eb_bp_contract", "partner_id", "ＢＰ契約"},
		{"eb_bpmemberorder", "partner_id", "ＢＰ注文書"},
		{"eb_subcontractormember", "partner_id", "担当者"},
	},
	"project_member": {
		{"eb_memberattendance", "project_member_id", "出勤情報"},
		{"eb_bpmemberorder", "project_member_id", "ＢＰ注文書"},
	},
}

// Blockers 削除をブロックしている参照の名称一覧を返す。空なら削除できる。
func Blockers(ctx context.Context, db *gorm.DB, kind, id string) ([]string, error) {
	relations, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown protect kind: %s", kind)
	}
	var blockers []string
	for _, rel := range relations {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", rel.table, rel.column)
		if hasIsDeleted(rel.table) {
			query += " AND is_deleted = false"
		}
		if err := db.WithContext(ctx).Raw(query, id).Scan(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count references in %s: %w", rel.table, err)
		}
		if count > 0 {
			blockers = append(blockers, fmt.Sprintf("%s（%d件）", rel.label, count))
		}
	}
	return blockers, nil
}

// Check 削除可能かどうかを検証する。参照が残っている場合は業務エラー。
func Check(ctx context.Context, db *gorm.DB, kind, id string) error {
	blockers, err := Blockers(ctx, db, kind, id)
	if err != nil {
		return err
	}
	if len(blockers) > 0 {
		return bizerr.New("関連データが存在するため削除できません：%s", strings.Join(blockers, "、"))
	}
	return nil
}

// hasIsDeleted テーブルが論理削除カラムを持つかどうか
func hasIsDeleted(table string) bool {
	switch table {
	case "eb_memberattendance", "eb_projectrequest", "eb_clientorder_projects":
		return false
	}
	return true
}
