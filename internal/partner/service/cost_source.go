package service

import (
	"context"

	projectrepo "github.com/YangWanjun/ebusiness/internal/project/repository"
)

// ContractCostSource 請求明細の参考コストをＢＰ契約から引くアダプター。
// 社員給与は給与システム側で管理しているため salary は常に0を返す。
type ContractCostSource struct {
	projectMembers *projectrepo.ProjectMemberRepository
	contracts      *ContractService
}

func NewContractCostSource(projectMembers *projectrepo.ProjectMemberRepository, contracts *ContractService) *ContractCostSource {
	return &ContractCostSource{projectMembers: projectMembers, contracts: contracts}
}

// Costs 対象年月のＢＰ契約を解決して月額コストを返す。
// 契約のない要員（自社社員など）はエラーになり、呼び出し側で0円扱いになる。
func (s *ContractCostSource) Costs(ctx context.Context, projectMemberID, year, month string) (int64, int64, error) {
	y, m, err := parseYM(year, month)
	if err != nil {
		return 0, 0, err
	}
	pm, err := s.projectMembers.FindByID(ctx, projectMemberID)
	if err != nil {
		return 0, 0, err
	}
	contract, err := s.contracts.ResolveByMember(ctx, pm.MemberID, y, m)
	if err != nil {
		return 0, 0, err
	}
	pricing, err := s.contracts.PricingFor(ctx, contract, y, m)
	if err != nil {
		return 0, 0, err
	}
	return 0, pricing.Cost(), nil
}
