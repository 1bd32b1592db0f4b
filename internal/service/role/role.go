package role

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/alanyang/dao-janny/internal/domain/chain"
	portchain "github.com/alanyang/dao-janny/internal/port/chain"
)

// Service answers role questions for UI gating. Checks fail closed: anything
// that cannot be verified is reported as "no role".
type Service struct {
	reader portchain.RoleReader
}

func NewService(reader portchain.RoleReader) *Service {
	return &Service{reader: reader}
}

func (s *Service) HasRole(ctx context.Context, role, address string, chainID chain.ID) bool {
	roleID, ok := chain.RoleFor(role)
	if !ok {
		slog.DebugContext(ctx, "role: unknown role name", "role", role)
		return false
	}
	return s.check(ctx, roleID, role, address, chainID)
}

// IsAdmin checks the contract's ADMIN_ROLE for address.
func (s *Service) IsAdmin(ctx context.Context, address string, chainID chain.ID) bool {
	roleID, err := s.AdminRole(ctx, chainID)
	if err != nil {
		slog.WarnContext(ctx, "role: admin role unavailable", "chain_id", chainID, "error", err)
		return false
	}
	return s.check(ctx, roleID, "admin", address, chainID)
}

func (s *Service) check(ctx context.Context, roleID chain.RoleID, role, address string, chainID chain.ID) bool {
	if _, err := chain.Lookup(chainID); err != nil {
		return false
	}
	if !common.IsHexAddress(address) {
		return false
	}

	ok, err := s.reader.HasRole(ctx, chainID, roleID, address)
	if err != nil {
		slog.WarnContext(ctx, "role: hasRole read failed", "role", role, "chain_id", chainID, "address", address, "error", err)
		return false
	}
	return ok
}

// AdminRole reads the contract's ADMIN_ROLE constant. Unlike HasRole it
// returns errors; a missing admin constant is a deployment problem.
func (s *Service) AdminRole(ctx context.Context, chainID chain.ID) (chain.RoleID, error) {
	if _, err := chain.Lookup(chainID); err != nil {
		return chain.RoleID{}, err
	}
	id, err := s.reader.AdminRole(ctx, chainID)
	if err != nil {
		return chain.RoleID{}, fmt.Errorf("read ADMIN_ROLE on chain %d: %w", chainID, err)
	}
	return id, nil
}

// Roles checks several role names at once. With no names it checks every known role.
func (s *Service) Roles(ctx context.Context, address string, chainID chain.ID, names ...string) map[string]bool {
	if len(names) == 0 {
		names = chain.RoleNames()
	}
	out := make(map[string]bool, len(names))
	for _, name := range names {
		out[name] = s.HasRole(ctx, name, address, chainID)
	}
	return out
}
