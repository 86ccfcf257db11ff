package common

import (
	"fmt"
	"math/big"
	"slices"
	"strings"
	"sync"
	"time"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ronin-capital/scholarpay/constants/enums"
	"github.com/samber/lo"
)

const (
	SUMMARY_DISCLAIMER = "This summary assumes all transactions succeeded, do not use it as a ledger of truth.\n"
)

type roleAggregate struct {
	addresses map[ethcmn.Address]struct{}
	total     *big.Int
}

// PayoutSummary aggregates paid amounts per role for a single run.
// It is created once per invocation and shared by pointer, safe for concurrent use.
type PayoutSummary struct {
	mtx      sync.Mutex
	runId    string
	token    string
	decimals int32
	started  time.Time
	roles    map[enums.ESummaryRole]*roleAggregate
}

func NewPayoutSummary(runId string, token string, decimals int32) *PayoutSummary {
	return &PayoutSummary{
		runId:    runId,
		token:    token,
		decimals: decimals,
		started:  time.Now(),
		roles:    make(map[enums.ESummaryRole]*roleAggregate),
	}
}

func (s *PayoutSummary) Record(role enums.ESummaryRole, address ethcmn.Address, amount *big.Int) {
	if amount == nil || amount.Sign() <= 0 {
		return
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()

	aggregate, ok := s.roles[role]
	if !ok {
		aggregate = &roleAggregate{
			addresses: make(map[ethcmn.Address]struct{}),
			total:     new(big.Int),
		}
		s.roles[role] = aggregate
	}
	aggregate.addresses[address] = struct{}{}
	aggregate.total.Add(aggregate.total, amount)
}

func (s *PayoutSummary) RecordLine(line PayoutLine) {
	s.Record(line.Kind.ToSummaryRole(), line.Recipient, line.Amount)
}

func (s *PayoutSummary) GetRunId() string {
	return s.runId
}

func (s *PayoutSummary) GetToken() string {
	return s.token
}

func (s *PayoutSummary) IsEmpty() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return len(s.roles) == 0
}

type RoleSummary struct {
	Role   enums.ESummaryRole `json:"role"`
	Count  int                `json:"count"`
	Total  string             `json:"total"`
	Amount *big.Int           `json:"-"`
}

type PayoutSummaryReport struct {
	RunId     string        `json:"run_id"`
	Token     string        `json:"token"`
	Decimals  int32         `json:"decimals"`
	StartedAt time.Time     `json:"started_at"`
	CreatedAt time.Time     `json:"created_at"`
	Roles     []RoleSummary `json:"roles"`
	Text      string        `json:"text"`
}

func (r *PayoutSummaryReport) GetRole(role enums.ESummaryRole) (RoleSummary, bool) {
	return lo.Find(r.Roles, func(rs RoleSummary) bool {
		return rs.Role == role
	})
}

// Snapshot returns a consistent copy with roles in the reporting order.
func (s *PayoutSummary) Snapshot() *PayoutSummaryReport {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	roles := make([]RoleSummary, 0, len(s.roles))
	for _, role := range enums.SUMMARY_ROLES_ORDER {
		aggregate, ok := s.roles[role]
		if !ok {
			continue
		}
		roles = append(roles, RoleSummary{
			Role:   role,
			Count:  len(aggregate.addresses),
			Total:  FormatTokenAmount(aggregate.total, s.decimals),
			Amount: new(big.Int).Set(aggregate.total),
		})
	}

	report := &PayoutSummaryReport{
		RunId:     s.runId,
		Token:     s.token,
		Decimals:  s.decimals,
		StartedAt: s.started,
		CreatedAt: time.Now(),
		Roles:     roles,
	}
	report.Text = report.String()
	return report
}

func (r *PayoutSummaryReport) String() string {
	var builder strings.Builder
	for _, rs := range r.Roles {
		switch rs.Role {
		case enums.SUMMARY_ROLE_DONATION:
			fmt.Fprintf(&builder, "Donated to %d organisations, %s %s.\n", rs.Count, rs.Total, r.Token)
		case enums.SUMMARY_ROLE_CLAIM:
			fmt.Fprintf(&builder, "Claimed %s %s from %d accounts.\n", rs.Total, r.Token, rs.Count)
		default:
			fmt.Fprintf(&builder, "Paid %d %ss, %s %s.\n", rs.Count, rs.Role, rs.Total, r.Token)
		}
	}
	builder.WriteString(SUMMARY_DISCLAIMER)
	return builder.String()
}

// Report renders the human readable summary.
func (s *PayoutSummary) Report() string {
	return s.Snapshot().String()
}

func (s *PayoutSummary) GetRecordedRoles() []enums.ESummaryRole {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return lo.Filter(slices.Clone(enums.SUMMARY_ROLES_ORDER), func(role enums.ESummaryRole, _ int) bool {
		_, ok := s.roles[role]
		return ok
	})
}
