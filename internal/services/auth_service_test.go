package services_test

import (
	"context"
	stderrors "errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/rafabene/usuarios-backend/internal/domain/entities"
	"github.com/rafabene/usuarios-backend/internal/domain/errors"
	"github.com/rafabene/usuarios-backend/internal/domain/ports"
	"github.com/rafabene/usuarios-backend/internal/domain/repositories"
	"github.com/rafabene/usuarios-backend/internal/infrastructure/logging"
	"github.com/rafabene/usuarios-backend/internal/services"
)

type stubIssuer struct {
	role entities.Role
	err  error
}

func (s *stubIssuer) Generate(_ uint, _ string, role entities.Role) (string, error) {
	s.role = role
	return "token", s.err
}

var _ = Describe("AuthService", func() {
	var (
		ctx     context.Context
		repo    *repositories.MockUserRepository
		hasher  *ports.MockPasswordHasher
		issuer  *stubIssuer
		service *services.AuthService
		user    *entities.User
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl := gomock.NewController(GinkgoT())
		repo = repositories.NewMockUserRepository(ctrl)
		hasher = ports.NewMockPasswordHasher(ctrl)
		issuer = &stubIssuer{}
		service = services.NewAuthService(repo, hasher, issuer, []string{"Root@Example.com"}, logging.Discard())
		user = &entities.User{ID: 3, Email: "ana@example.com", PasswordHash: "hash", Status: true}
	})

	It("issues a token for valid credentials", func() {
		repo.EXPECT().FindByEmail(ctx, "ana@example.com").Return(user, nil)
		hasher.EXPECT().Compare("hash", "secret").Return(true)

		result, err := service.Login(ctx, "ana@example.com", "secret")

		Expect(err).NotTo(HaveOccurred())
		Expect(result.AccessToken).To(Equal("token"))
		Expect(result.Role).To(Equal(entities.RoleUser))
		Expect(issuer.role).To(Equal(entities.RoleUser))
	})

	It("grants the admin role to configured emails", func() {
		Expect(service.RoleFor("root@example.com")).To(Equal(entities.RoleAdmin))
		Expect(service.RoleFor("ana@example.com")).To(Equal(entities.RoleUser))
	})

	It("rejects a wrong password", func() {
		repo.EXPECT().FindByEmail(ctx, gomock.Any()).Return(user, nil)
		hasher.EXPECT().Compare("hash", "nope").Return(false)

		_, err := service.Login(ctx, "ana@example.com", "nope")

		Expect(errors.IsUnauthorized(err)).To(BeTrue())
		Expect(err).To(MatchError(errors.ErrInvalidCredentials))
	})

	It("rejects unknown and soft-deleted users alike", func() {
		repo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, nil)
		_, err := service.Login(ctx, "ghost@example.com", "x")
		Expect(errors.IsUnauthorized(err)).To(BeTrue())

		user.Status = false
		repo.EXPECT().FindByEmail(ctx, "ana@example.com").Return(user, nil)
		_, err = service.Login(ctx, "ana@example.com", "secret")
		Expect(errors.IsUnauthorized(err)).To(BeTrue())
	})

	It("reports store and signing failures as internal", func() {
		repo.EXPECT().FindByEmail(ctx, gomock.Any()).Return(nil, stderrors.New("db down"))
		_, err := service.Login(ctx, "ana@example.com", "secret")
		Expect(errors.IsInternal(err)).To(BeTrue())

		issuer.err = stderrors.New("bad key")
		repo.EXPECT().FindByEmail(ctx, gomock.Any()).Return(user, nil)
		hasher.EXPECT().Compare(gomock.Any(), gomock.Any()).Return(true)
		_, err = service.Login(ctx, "ana@example.com", "secret")
		Expect(errors.IsInternal(err)).To(BeTrue())
	})
})
