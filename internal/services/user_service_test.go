package services_test

import (
	"context"
	"encoding/json"
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

var _ = Describe("UserService", func() {
	var (
		ctx     context.Context
		ctrl    *gomock.Controller
		repo    *repositories.MockUserRepository
		hasher  *ports.MockPasswordHasher
		metrics *recordingMetrics
		service *services.UserService
		errDB   error
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(GinkgoT())
		repo = repositories.NewMockUserRepository(ctrl)
		hasher = ports.NewMockPasswordHasher(ctrl)
		hasher.EXPECT().Hash(gomock.Any()).DoAndReturn(func(p string) (string, error) {
			return "hashed:" + p, nil
		}).AnyTimes()
		metrics = newRecordingMetrics()
		service = services.NewUserService(repo, passthroughUoW{}, hasher, metrics, logging.Discard())
		errDB = stderrors.New("connection refused")
	})

	Describe("CreateUser", func() {
		input := services.CreateUserInput{
			Name:           "Ana",
			Email:          "ana@example.com",
			Password:       "secret",
			PasswordSecond: "secret",
			Cellphone:      "555-0100",
		}

		It("stores the hashed password and returns the new id", func() {
			repo.EXPECT().FindByEmail(ctx, "ana@example.com").Return(nil, nil)
			repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *entities.User) error {
				Expect(u.PasswordHash).To(Equal("hashed:secret"))
				Expect(u.Status).To(BeTrue())
				u.ID = 7
				return nil
			})

			user, err := service.CreateUser(ctx, input)

			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(uint(7)))
			Expect(user.PasswordHash).NotTo(Equal(input.Password))
			Expect(metrics.created["single"]).To(Equal(1))
		})

		It("rejects mismatched passwords before touching the store", func() {
			mismatch := input
			mismatch.PasswordSecond = "other"

			_, err := service.CreateUser(ctx, mismatch)

			Expect(errors.IsValidation(err)).To(BeTrue())
			Expect(err).To(MatchError(errors.ErrPasswordsDoNotMatch))
		})

		It("rejects an email that already exists, even if soft-deleted", func() {
			repo.EXPECT().FindByEmail(ctx, "ana@example.com").Return(&entities.User{ID: 1, Status: false}, nil)

			_, err := service.CreateUser(ctx, input)

			Expect(errors.IsConflict(err)).To(BeTrue())
			Expect(metrics.created).To(BeEmpty())
		})

		It("maps a unique violation raised by the insert to a conflict", func() {
			repo.EXPECT().FindByEmail(ctx, gomock.Any()).Return(nil, nil)
			repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.ErrEmailAlreadyExists)

			_, err := service.CreateUser(ctx, input)

			Expect(errors.IsConflict(err)).To(BeTrue())
		})

		It("reports store failures as internal errors", func() {
			repo.EXPECT().FindByEmail(ctx, gomock.Any()).Return(nil, errDB)

			_, err := service.CreateUser(ctx, input)

			Expect(errors.IsInternal(err)).To(BeTrue())
		})
	})

	Describe("BulkCreateUsers", func() {
		parse := func(body string) []services.BulkUserInput {
			items, err := services.ParseBulkPayload([]byte(body))
			Expect(err).NotTo(HaveOccurred())
			return items
		}

		It("counts successes and failures and keeps failed payloads in order", func() {
			body := `[
				{"name":"a","email":"a@x.com","password":"p","password_second":"p","cellphone":"1"},
				{"name":"b","password":"p","password_second":"p","cellphone":"2"},
				{"name":"c","email":"c@x.com","password":"p","password_second":"p","cellphone":"3"},
				{"name":"d","email":"d@x.com","password":"p","password_second":"q","cellphone":"4"},
				{"name":"e","email":"e@x.com","password":"p","password_second":"p","cellphone":"5","status":false}
			]`
			var created []*entities.User
			repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *entities.User) error {
				created = append(created, u)
				return nil
			}).Times(3)

			result := service.BulkCreateUsers(ctx, parse(body))

			Expect(result.SuccessCount).To(Equal(3))
			Expect(result.ErrorCount).To(Equal(2))
			Expect(result.ErrorUsers).To(HaveLen(2))
			Expect(string(result.ErrorUsers[0])).To(MatchJSON(`{"name":"b","password":"p","password_second":"p","cellphone":"2"}`))
			Expect(string(result.ErrorUsers[1])).To(MatchJSON(`{"name":"d","email":"d@x.com","password":"p","password_second":"q","cellphone":"4"}`))

			Expect(created[0].Status).To(BeTrue())
			Expect(created[0].PasswordHash).To(Equal("hashed:p"))
			Expect(created[2].Status).To(BeFalse())
			Expect(metrics.bulk).To(Equal(map[string]int{"success": 3, "error": 2}))
		})

		It("isolates store failures per item", func() {
			body := `[
				{"name":"a","email":"a@x.com","password":"p","password_second":"p","cellphone":"1"},
				{"name":"b","email":"a@x.com","password":"p","password_second":"p","cellphone":"2"}
			]`
			gomock.InOrder(
				repo.EXPECT().Create(ctx, gomock.Any()).Return(nil),
				repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.ErrEmailAlreadyExists),
			)

			result := service.BulkCreateUsers(ctx, parse(body))

			Expect(result.SuccessCount).To(Equal(1))
			Expect(result.ErrorCount).To(Equal(1))
		})

		It("treats non-object elements as failures", func() {
			result := service.BulkCreateUsers(ctx, parse(`[null, 3, "x", {"name": 5}]`))

			Expect(result.SuccessCount).To(BeZero())
			Expect(result.ErrorCount).To(Equal(4))
			Expect(result.ErrorUsers[0]).To(Equal(json.RawMessage(`null`)))
			Expect(result.ErrorUsers[1]).To(Equal(json.RawMessage(`3`)))
		})

		It("returns an empty error list for an empty array", func() {
			result := service.BulkCreateUsers(ctx, parse(`[]`))

			Expect(result.ErrorUsers).NotTo(BeNil())
			Expect(result.ErrorUsers).To(BeEmpty())
		})

		DescribeTable("ParseBulkPayload rejects non-array bodies", func(body string) {
			_, err := services.ParseBulkPayload([]byte(body))

			Expect(errors.IsValidation(err)).To(BeTrue())
			Expect(err).To(MatchError(errors.ErrBulkPayloadNotArray))
		},
			Entry("object", `{"name":"a"}`),
			Entry("null", `null`),
			Entry("string", `"users"`),
			Entry("invalid json", `[{`),
		)
	})

	Describe("reads", func() {
		It("GetAllUsers lists active users", func() {
			users := []*entities.User{{ID: 1, Status: true}}
			repo.EXPECT().List(ctx, repositories.UserFilters{Status: true}).Return(users, nil)

			Expect(service.GetAllUsers(ctx)).To(Equal(users))
		})

		It("GetAllUsers hides store errors behind an internal error", func() {
			repo.EXPECT().List(ctx, gomock.Any()).Return(nil, errDB)

			_, err := service.GetAllUsers(ctx)

			Expect(errors.IsInternal(err)).To(BeTrue())
			Expect(err.(*errors.DomainError).Message).To(Equal("error.internal"))
		})

		It("GetUserByID returns nil without error when missing", func() {
			repo.EXPECT().FindByID(ctx, uint(9)).Return(nil, nil)

			user, err := service.GetUserByID(ctx, 9)

			Expect(err).NotTo(HaveOccurred())
			Expect(user).To(BeNil())
		})

		It("FindUsers passes the built filter to the store", func() {
			name := "ana"
			repo.EXPECT().List(ctx, repositories.UserFilters{Status: true, Name: &name}).Return(nil, nil)

			_, err := service.FindUsers(ctx, map[string]string{"name": "ana"})

			Expect(err).NotTo(HaveOccurred())
		})

		It("FindUsers rejects invalid dates without querying", func() {
			_, err := service.FindUsers(ctx, map[string]string{"fechaInicioDespues": "31-31-31"})

			Expect(errors.IsValidation(err)).To(BeTrue())
		})

		It("UserExists reports store errors", func() {
			repo.EXPECT().ExistsByID(ctx, uint(3)).Return(false, errDB)

			_, err := service.UserExists(ctx, 3)

			Expect(errors.IsInternal(err)).To(BeTrue())
		})
	})

	Describe("UpdateUser", func() {
		current := &entities.User{ID: 5, Name: "Ana", PasswordHash: "old-hash", Cellphone: "111", Status: true}

		strPtr := func(s string) *string { return &s }

		It("keeps unset fields at their stored values", func() {
			repo.EXPECT().FindByID(ctx, uint(5)).Return(current, nil)
			repo.EXPECT().Update(ctx, uint(5), entities.UserPatch{
				Name:         strPtr("Ana"),
				PasswordHash: strPtr("old-hash"),
				Cellphone:    strPtr("222"),
			}).Return(nil)

			Expect(service.UpdateUser(ctx, 5, services.UpdateUserInput{Cellphone: strPtr("222")})).To(Succeed())
		})

		It("re-hashes a new password", func() {
			repo.EXPECT().FindByID(ctx, uint(5)).Return(current, nil)
			repo.EXPECT().Update(ctx, uint(5), gomock.Any()).DoAndReturn(func(_ context.Context, _ uint, p entities.UserPatch) error {
				Expect(*p.PasswordHash).To(Equal("hashed:new"))
				return nil
			})

			Expect(service.UpdateUser(ctx, 5, services.UpdateUserInput{Password: strPtr("new")})).To(Succeed())
		})

		It("keeps the stored password when the new one is empty", func() {
			repo.EXPECT().FindByID(ctx, uint(5)).Return(current, nil)
			repo.EXPECT().Update(ctx, uint(5), gomock.Any()).DoAndReturn(func(_ context.Context, _ uint, p entities.UserPatch) error {
				Expect(*p.PasswordHash).To(Equal("old-hash"))
				return nil
			})

			Expect(service.UpdateUser(ctx, 5, services.UpdateUserInput{Password: strPtr("")})).To(Succeed())
		})

		It("still succeeds when no active row matches", func() {
			repo.EXPECT().FindByID(ctx, uint(99)).Return(nil, nil)
			repo.EXPECT().Update(ctx, uint(99), entities.UserPatch{Name: strPtr("ghost")}).Return(nil)

			Expect(service.UpdateUser(ctx, 99, services.UpdateUserInput{Name: strPtr("ghost")})).To(Succeed())
		})

		It("fails when the lookup fails", func() {
			repo.EXPECT().FindByID(ctx, uint(5)).Return(nil, errDB)

			err := service.UpdateUser(ctx, 5, services.UpdateUserInput{})

			Expect(errors.IsInternal(err)).To(BeTrue())
		})
	})

	Describe("DeleteUser", func() {
		It("soft-deletes without checking the current status", func() {
			repo.EXPECT().SoftDelete(ctx, uint(4)).Return(nil)

			Expect(service.DeleteUser(ctx, 4)).To(Succeed())
		})

		It("reports store failures", func() {
			repo.EXPECT().SoftDelete(ctx, uint(4)).Return(errDB)

			Expect(errors.IsInternal(service.DeleteUser(ctx, 4))).To(BeTrue())
		})
	})
})
