package services_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	sqliteadapter "github.com/SscSPs/shop_ledger/internal/adapters/database/sqlite"
	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/core/services"
	"github.com/SscSPs/shop_ledger/internal/metrics"
	"github.com/SscSPs/shop_ledger/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ShopDocumentSyncer ---
type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) UpsertShopDocument(ctx context.Context, shopID string, fields map[string]any) error {
	args := m.Called(ctx, shopID, fields)
	return args.Error(0)
}

func day(n int) time.Time {
	return domain.Inception.AddDate(0, 0, n)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type LedgerServicesTestSuite struct {
	suite.Suite
	db     *sql.DB
	syncer *MockSyncer
	svc    *portssvc.ServiceContainer
}

func TestLedgerServicesTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServicesTestSuite))
}

func (suite *LedgerServicesTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.Open(context.Background(), filepath.Join(suite.T().TempDir(), "ledger.db"), logger)
	suite.Require().NoError(err)
	suite.db = db

	suite.syncer = new(MockSyncer)
	suite.syncer.On("UpsertShopDocument", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.svc = services.NewServiceContainer(sqliteadapter.NewRepositoryProvider(db), suite.syncer, metrics.New())
}

func (suite *LedgerServicesTestSuite) TearDownTest() {
	suite.db.Close()
}

func (suite *LedgerServicesTestSuite) newShop(name string) *domain.Shop {
	shop, err := suite.svc.Shop.CreateShop(context.Background(), name, "Market Road")
	suite.Require().NoError(err)
	return shop
}

func (suite *LedgerServicesTestSuite) newInvestor(name string) *domain.Investor {
	investor, err := suite.svc.Investor.CreateInvestor(context.Background(), name)
	suite.Require().NoError(err)
	return investor
}

func (suite *LedgerServicesTestSuite) addLink(shopID, investorID, share string, joined time.Time) *domain.OwnershipLink {
	link, err := suite.svc.Ownership.AddInvestor(context.Background(), shopID, investorID, dec(share), joined)
	suite.Require().NoError(err)
	return link
}

func (suite *LedgerServicesTestSuite) record(linkID, amount string, date time.Time) {
	_, err := suite.svc.Investment.Record(context.Background(), linkID, dec(amount), date, "round 1", "")
	suite.Require().NoError(err)
}

func entryFor(settlement *domain.YearEndSettlement, investorID string) *domain.SettlementEntry {
	for i := range settlement.Entries {
		if settlement.Entries[i].InvestorID == investorID {
			return &settlement.Entries[i]
		}
	}
	return nil
}

// sixtyForty sets up a shop where X holds 60% and Y 40% since inception,
// X paid 600 on day 10 and Y paid 300 on day 20.
func (suite *LedgerServicesTestSuite) sixtyForty() (shop *domain.Shop, x, y *domain.OwnershipLink) {
	shop = suite.newShop("Shop A")
	x = suite.addLink(shop.ShopID, suite.newInvestor("X").InvestorID, "60", domain.Inception)
	y = suite.addLink(shop.ShopID, suite.newInvestor("Y").InvestorID, "40", domain.Inception)
	suite.record(x.LinkID, "600", day(10))
	suite.record(y.LinkID, "300", day(20))
	return shop, x, y
}

func (suite *LedgerServicesTestSuite) TestCloseSettlement_SplitsBySharePercentage() {
	ctx := context.Background()
	shop, x, y := suite.sixtyForty()

	settlement, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(30), false, "year one")
	suite.Require().NoError(err)
	suite.True(dec("900").Equal(settlement.TotalInvested))
	suite.Require().Len(settlement.Entries, 2)

	ex := entryFor(settlement, x.InvestorID)
	suite.Require().NotNil(ex)
	suite.True(dec("540").Equal(ex.FairShareAmount))
	suite.True(dec("600").Equal(ex.ActualPaidAmount))
	suite.True(dec("-60").Equal(ex.BalanceAmount))

	ey := entryFor(settlement, y.InvestorID)
	suite.Require().NotNil(ey)
	suite.True(dec("360").Equal(ey.FairShareAmount))
	suite.True(dec("300").Equal(ey.ActualPaidAmount))
	suite.True(dec("60").Equal(ey.BalanceAmount))
	suite.True(ey.SettlementPaidAmount.IsZero())
	suite.Nil(ey.SettlementPaidDate)

	stored, err := suite.svc.Settlement.GetSettlement(ctx, settlement.SettlementID)
	suite.Require().NoError(err)
	suite.Len(stored.Entries, 2)
	suite.Equal("year one", stored.Note)
	suite.True(stored.PeriodStartDate.Equal(domain.Inception))
	suite.True(stored.SettlementDate.Equal(day(30)))
}

func (suite *LedgerServicesTestSuite) TestCloseSettlement_ExcludesDeactivatedInvestor() {
	ctx := context.Background()
	shop, x, y := suite.sixtyForty()

	_, err := suite.svc.Ownership.DeactivateInvestor(ctx, y.LinkID)
	suite.Require().NoError(err)

	settlement, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(30), false, "")
	suite.Require().NoError(err)
	suite.True(dec("600").Equal(settlement.TotalInvested))
	suite.Require().Len(settlement.Entries, 1)
	suite.Equal(x.InvestorID, settlement.Entries[0].InvestorID)
	suite.True(dec("600").Equal(settlement.Entries[0].FairShareAmount))
	suite.Nil(entryFor(settlement, y.InvestorID))
}

func (suite *LedgerServicesTestSuite) TestCloseSettlement_SingleInvestorOwesNothing() {
	ctx := context.Background()
	shop := suite.newShop("Solo")
	link := suite.addLink(shop.ShopID, suite.newInvestor("Amina").InvestorID, "25", domain.Inception)
	suite.record(link.LinkID, "100.10", day(1))
	suite.record(link.LinkID, "200.20", day(2))
	suite.record(link.LinkID, "0.05", day(3))

	settlement, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(30), false, "")
	suite.Require().NoError(err)
	suite.Require().Len(settlement.Entries, 1)
	suite.True(dec("300.35").Equal(settlement.Entries[0].FairShareAmount))
	suite.True(settlement.Entries[0].BalanceAmount.IsZero())
}

func (suite *LedgerServicesTestSuite) TestCloseSettlement_RejectsEmptyOrInvertedPeriod() {
	ctx := context.Background()
	shop, _, _ := suite.sixtyForty()

	_, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, domain.Inception, false, "")
	suite.ErrorIs(err, apperrors.ErrInvalidPeriod)

	_, err = suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, day(10), day(5), false, "")
	suite.ErrorIs(err, apperrors.ErrInvalidPeriod)
}

func (suite *LedgerServicesTestSuite) TestCloseSettlement_EnforcesContinuity() {
	ctx := context.Background()
	shop, _, _ := suite.sixtyForty()

	_, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, day(1), day(30), false, "")
	suite.ErrorIs(err, apperrors.ErrInvalidPeriod, "first settlement must start at inception")

	first, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(30), false, "")
	suite.Require().NoError(err)

	next, err := suite.svc.Settlement.NextPeriodStart(ctx, shop.ShopID)
	suite.Require().NoError(err)
	suite.True(next.Equal(first.SettlementDate))

	_, err = suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, day(31), day(60), false, "")
	suite.ErrorIs(err, apperrors.ErrInvalidPeriod, "gap after previous settlement")

	_, err = suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(60), false, "")
	suite.ErrorIs(err, apperrors.ErrInvalidPeriod, "overlap with previous settlement")

	second, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, day(30), day(60), false, "")
	suite.Require().NoError(err)
	suite.True(second.TotalInvested.IsZero())

	listed, err := suite.svc.Settlement.ListSettlements(ctx, shop.ShopID)
	suite.Require().NoError(err)
	suite.Require().Len(listed, 2)
	suite.Equal(second.SettlementID, listed[0].SettlementID)
}

func (suite *LedgerServicesTestSuite) TestCloseSettlement_SerializesConcurrentCloses() {
	ctx := context.Background()
	shop, _, _ := suite.sixtyForty()

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(30), false, "")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		suite.ErrorIs(err, apperrors.ErrInvalidPeriod)
	}
	suite.Equal(1, succeeded)

	listed, err := suite.svc.Settlement.ListSettlements(ctx, shop.ShopID)
	suite.Require().NoError(err)
	suite.Len(listed, 1)
}

func (suite *LedgerServicesTestSuite) TestCloseSettlement_RequiresActiveInvestor() {
	ctx := context.Background()
	shop := suite.newShop("Empty")

	_, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(30), false, "")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Settlement.CloseSettlement(ctx, "missing", domain.Inception, day(30), false, "")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServicesTestSuite) TestCloseSettlement_AssignsResidualToLargestShare() {
	ctx := context.Background()
	shop := suite.newShop("Thirds")
	a := suite.addLink(shop.ShopID, suite.newInvestor("A").InvestorID, "30", day(0))
	b := suite.addLink(shop.ShopID, suite.newInvestor("B").InvestorID, "30", day(1))
	c := suite.addLink(shop.ShopID, suite.newInvestor("C").InvestorID, "30", day(2))
	suite.record(a.LinkID, "100", day(5))

	settlement, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(30), false, "")
	suite.Require().NoError(err)

	sum := decimal.Zero
	for _, e := range settlement.Entries {
		sum = sum.Add(e.FairShareAmount)
	}
	suite.True(dec("100").Equal(sum))
	suite.True(dec("33.34").Equal(entryFor(settlement, a.InvestorID).FairShareAmount))
	suite.True(dec("33.33").Equal(entryFor(settlement, b.InvestorID).FairShareAmount))
	suite.True(dec("33.33").Equal(entryFor(settlement, c.InvestorID).FairShareAmount))
}

func (suite *LedgerServicesTestSuite) TestCloseSettlement_CountsContributionsBeforeShareChange() {
	ctx := context.Background()
	shop := suite.newShop("Bakery")
	x := suite.addLink(shop.ShopID, suite.newInvestor("X").InvestorID, "100", domain.Inception)
	suite.record(x.LinkID, "500", day(5))

	x2, err := suite.svc.Ownership.ChangeShare(ctx, x.LinkID, dec("60"), day(10))
	suite.Require().NoError(err)
	suite.NotEqual(x.LinkID, x2.LinkID)
	y := suite.addLink(shop.ShopID, suite.newInvestor("Y").InvestorID, "40", day(10))
	suite.record(x2.LinkID, "100", day(12))
	suite.record(y.LinkID, "400", day(15))

	settlement, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(30), false, "")
	suite.Require().NoError(err)
	suite.True(dec("1000").Equal(settlement.TotalInvested))
	suite.Require().Len(settlement.Entries, 2)

	ex := entryFor(settlement, x.InvestorID)
	suite.True(dec("600").Equal(ex.FairShareAmount))
	suite.True(dec("600").Equal(ex.ActualPaidAmount))
	suite.True(ex.BalanceAmount.IsZero())

	ey := entryFor(settlement, y.InvestorID)
	suite.True(dec("400").Equal(ey.FairShareAmount))
	suite.True(ey.BalanceAmount.IsZero())
}

func (suite *LedgerServicesTestSuite) TestRecordSettlementPayment_TracksOutstanding() {
	ctx := context.Background()
	shop, x, y := suite.sixtyForty()

	settlement, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(30), true, "")
	suite.Require().NoError(err)
	ey := entryFor(settlement, y.InvestorID)

	paid, err := suite.svc.Settlement.RecordSettlementPayment(ctx, ey.EntryID, dec("20"), day(40))
	suite.Require().NoError(err)
	suite.True(dec("20").Equal(paid.SettlementPaidAmount))
	suite.Require().NotNil(paid.SettlementPaidDate)
	suite.True(day(40).Equal(*paid.SettlementPaidDate))

	balances, err := suite.svc.Settlement.OutstandingBalances(ctx, shop.ShopID)
	suite.Require().NoError(err)
	suite.Require().Len(balances, 2)
	byInvestor := map[string]decimal.Decimal{}
	for _, b := range balances {
		byInvestor[b.InvestorID] = b.Amount
	}
	suite.True(dec("-60").Equal(byInvestor[x.InvestorID]))
	suite.True(dec("40").Equal(byInvestor[y.InvestorID]))

	_, err = suite.svc.Settlement.RecordSettlementPayment(ctx, ey.EntryID, dec("50"), day(41))
	suite.ErrorIs(err, apperrors.ErrValidation, "over-settlement")
	_, err = suite.svc.Settlement.RecordSettlementPayment(ctx, ey.EntryID, dec("0"), day(41))
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.svc.Settlement.RecordSettlementPayment(ctx, ey.EntryID, dec("1.005"), day(41))
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.svc.Settlement.RecordSettlementPayment(ctx, "missing", dec("1"), day(41))
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.svc.Settlement.RecordSettlementPayment(ctx, ey.EntryID, dec("40"), day(42))
	suite.Require().NoError(err)

	balances, err = suite.svc.Settlement.OutstandingBalances(ctx, shop.ShopID)
	suite.Require().NoError(err)
	suite.Require().Len(balances, 1)
	suite.Equal(x.InvestorID, balances[0].InvestorID)
}

func (suite *LedgerServicesTestSuite) TestOutstandingBalances_IgnoresClosedSettlements() {
	ctx := context.Background()
	shop, _, _ := suite.sixtyForty()

	_, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(30), false, "")
	suite.Require().NoError(err)

	balances, err := suite.svc.Settlement.OutstandingBalances(ctx, shop.ShopID)
	suite.Require().NoError(err)
	suite.Empty(balances)
}

func (suite *LedgerServicesTestSuite) TestAddInvestor_EnforcesShareCapAndUniquePair() {
	ctx := context.Background()
	shop := suite.newShop("Capped")
	x := suite.newInvestor("X")
	y := suite.newInvestor("Y")
	suite.addLink(shop.ShopID, x.InvestorID, "60", domain.Inception)

	_, err := suite.svc.Ownership.AddInvestor(ctx, shop.ShopID, y.InvestorID, dec("40.01"), domain.Inception)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Ownership.AddInvestor(ctx, shop.ShopID, x.InvestorID, dec("10"), domain.Inception)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = suite.svc.Ownership.AddInvestor(ctx, shop.ShopID, y.InvestorID, dec("0"), domain.Inception)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Ownership.AddInvestor(ctx, shop.ShopID, "missing", dec("10"), domain.Inception)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.addLink(shop.ShopID, y.InvestorID, "40", domain.Inception)

	share, err := suite.svc.Ownership.ActiveShareOf(ctx, shop.ShopID, y.InvestorID, day(1))
	suite.Require().NoError(err)
	suite.True(dec("40").Equal(share))
}

func (suite *LedgerServicesTestSuite) TestDeactivateInvestor_IsIdempotentAndBlocksTransactions() {
	ctx := context.Background()
	shop := suite.newShop("Closing")
	link := suite.addLink(shop.ShopID, suite.newInvestor("X").InvestorID, "50", domain.Inception)
	suite.record(link.LinkID, "10", day(1))

	first, err := suite.svc.Ownership.DeactivateInvestor(ctx, link.LinkID)
	suite.Require().NoError(err)
	suite.Equal(domain.LinkInactive, first.Status)

	second, err := suite.svc.Ownership.DeactivateInvestor(ctx, link.LinkID)
	suite.Require().NoError(err)
	suite.Equal(domain.LinkInactive, second.Status)

	_, err = suite.svc.Investment.Record(ctx, link.LinkID, dec("10"), day(2), "round 1", "")
	suite.ErrorIs(err, apperrors.ErrValidation)

	sum, err := suite.svc.Investment.SumByLinkInPeriod(ctx, link.LinkID, domain.Inception, day(30))
	suite.Require().NoError(err)
	suite.True(dec("10").Equal(sum), "history survives deactivation")
}

func (suite *LedgerServicesTestSuite) TestChangeShare_RejectsCapAndEarlyDates() {
	ctx := context.Background()
	shop := suite.newShop("Shares")
	x := suite.addLink(shop.ShopID, suite.newInvestor("X").InvestorID, "50", day(5))
	suite.addLink(shop.ShopID, suite.newInvestor("Y").InvestorID, "50", day(5))

	_, err := suite.svc.Ownership.ChangeShare(ctx, x.LinkID, dec("60"), day(10))
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Ownership.ChangeShare(ctx, x.LinkID, dec("40"), day(1))
	suite.ErrorIs(err, apperrors.ErrValidation)

	replacement, err := suite.svc.Ownership.ChangeShare(ctx, x.LinkID, dec("40"), day(10))
	suite.Require().NoError(err)

	old, err := suite.svc.Ownership.GetLink(ctx, x.LinkID)
	suite.Require().NoError(err)
	suite.Equal(domain.LinkInactive, old.Status)

	active, err := suite.svc.Ownership.ListLinks(ctx, shop.ShopID, false)
	suite.Require().NoError(err)
	suite.Len(active, 2)

	_, err = suite.svc.Ownership.ChangeShare(ctx, x.LinkID, dec("30"), day(11))
	suite.ErrorIs(err, apperrors.ErrValidation, "inactive link")
	suite.Equal(x.InvestorID, replacement.InvestorID)
}

func (suite *LedgerServicesTestSuite) TestRecord_ValidatesAmountAndPhase() {
	ctx := context.Background()
	shop := suite.newShop("Ledger")
	link := suite.addLink(shop.ShopID, suite.newInvestor("X").InvestorID, "100", domain.Inception)

	_, err := suite.svc.Investment.Record(ctx, link.LinkID, dec("-5"), day(1), "round 1", "")
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.svc.Investment.Record(ctx, link.LinkID, dec("5"), day(1), " ", "")
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.svc.Investment.Record(ctx, link.LinkID, dec("0.001"), day(1), "round 1", "")
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.svc.Investment.Record(ctx, "missing", dec("5"), day(1), "round 1", "")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.record(link.LinkID, "100", day(1))
	txn, err := suite.svc.Investment.Record(ctx, link.LinkID, dec("-30"), day(2), domain.PhaseWithdrawal, "cash out")
	suite.Require().NoError(err)
	suite.Equal("cash out", txn.Note)

	sum, err := suite.svc.Investment.SumByLinkInPeriod(ctx, link.LinkID, domain.Inception, day(30))
	suite.Require().NoError(err)
	suite.True(dec("70").Equal(sum))

	_, err = suite.svc.Investment.SumByLinkInPeriod(ctx, link.LinkID, day(30), domain.Inception)
	suite.ErrorIs(err, apperrors.ErrValidation)

	page, token, err := suite.svc.Investment.ListTransactions(ctx, link.LinkID, 1, nil)
	suite.Require().NoError(err)
	suite.Require().Len(page, 1)
	suite.Equal(txn.TransactionID, page[0].TransactionID)
	suite.NotNil(token)
}

func (suite *LedgerServicesTestSuite) TestDeleteShop_CascadesButKeepsInvestors() {
	ctx := context.Background()
	shop, x, _ := suite.sixtyForty()
	other := suite.newShop("Shop B")
	suite.addLink(other.ShopID, x.InvestorID, "100", domain.Inception)

	settlement, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(30), true, "")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.svc.Shop.DeleteShop(ctx, shop.ShopID))

	_, err = suite.svc.Shop.GetShopByID(ctx, shop.ShopID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	_, err = suite.svc.Ownership.GetLink(ctx, x.LinkID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	_, err = suite.svc.Settlement.GetSettlement(ctx, settlement.SettlementID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	investor, err := suite.svc.Investor.GetInvestorByID(ctx, x.InvestorID)
	suite.Require().NoError(err)
	suite.Equal("X", investor.Name)

	links, err := suite.svc.Ownership.ListLinks(ctx, other.ShopID, true)
	suite.Require().NoError(err)
	suite.Len(links, 1)

	suite.ErrorIs(suite.svc.Shop.DeleteShop(ctx, shop.ShopID), apperrors.ErrNotFound)
}

func (suite *LedgerServicesTestSuite) TestPreferences_RoundTrip() {
	ctx := context.Background()

	_, err := suite.svc.Preference.GetPreference(ctx, "selectedShop")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	_, err = suite.svc.Preference.SetPreference(ctx, "  ", "x")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Preference.SetPreference(ctx, "selectedShop", "shop-1")
	suite.Require().NoError(err)
	pref, err := suite.svc.Preference.GetPreference(ctx, "selectedShop")
	suite.Require().NoError(err)
	suite.Equal("shop-1", pref.Value)
}

func TestShopService_SyncFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "ledger.db"), logger)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	syncer := new(MockSyncer)
	syncer.On("UpsertShopDocument", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(fields map[string]any) bool {
		return fields["name"] == "Corner"
	})).Return(errors.New("remote unavailable")).Once()

	svc := services.NewServiceContainer(sqliteadapter.NewRepositoryProvider(db), syncer, nil)
	shop, err := svc.Shop.CreateShop(ctx, "Corner", "Main St")
	if err != nil {
		t.Fatalf("create shop: %v", err)
	}

	stored, err := svc.Shop.GetShopByID(ctx, shop.ShopID)
	if err != nil {
		t.Fatalf("get shop: %v", err)
	}
	if stored.Name != "Corner" {
		t.Fatalf("expected stored name Corner, got %q", stored.Name)
	}
	syncer.AssertExpectations(t)
}

func TestShopService_RejectsBlankNames(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "ledger.db"), logger)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	svc := services.NewServiceContainer(sqliteadapter.NewRepositoryProvider(db), nil, nil)
	_, err = svc.Shop.CreateShop(ctx, "   ", "")
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	shop, err := svc.Shop.CreateShop(ctx, "Corner", "")
	if err != nil {
		t.Fatal(err)
	}
	blank := ""
	_, err = svc.Shop.UpdateShop(ctx, shop.ShopID, &blank, nil)
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func (suite *LedgerServicesTestSuite) TestCapitalReport_CombinesContributionsSharesAndOutstanding() {
	ctx := context.Background()
	shop, x, y := suite.sixtyForty()
	_, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(30), true, "")
	suite.Require().NoError(err)

	report, err := suite.svc.Reporting.CapitalReport(ctx, shop.ShopID, day(15))
	suite.Require().NoError(err)
	suite.Require().Len(report.Investors, 2)
	suite.Equal(x.InvestorID, report.Investors[0].InvestorID)
	suite.Equal("X", report.Investors[0].InvestorName)
	suite.True(dec("600").Equal(report.Investors[0].Contributed))
	suite.True(dec("60").Equal(report.Investors[0].ActiveShare))
	suite.True(dec("-60").Equal(report.Investors[0].Outstanding))
	suite.Equal(y.InvestorID, report.Investors[1].InvestorID)
	suite.True(report.Investors[1].Contributed.IsZero())
	suite.True(dec("60").Equal(report.Investors[1].Outstanding))
	suite.True(dec("600").Equal(report.TotalContributed))
	suite.True(dec("100").Equal(report.TotalShare))

	now, err := suite.svc.Reporting.CapitalReport(ctx, shop.ShopID, time.Time{})
	suite.Require().NoError(err)
	suite.True(dec("900").Equal(now.TotalContributed))

	_, err = suite.svc.Reporting.CapitalReport(ctx, "missing", time.Time{})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServicesTestSuite) TestInvestorService_CRUD() {
	ctx := context.Background()
	investor := suite.newInvestor("Amina")

	updated, err := suite.svc.Investor.UpdateInvestor(ctx, investor.InvestorID, "Amina K")
	suite.Require().NoError(err)
	suite.Equal("Amina K", updated.Name)

	got, err := suite.svc.Investor.GetInvestorByID(ctx, investor.InvestorID)
	suite.Require().NoError(err)
	suite.Equal("Amina K", got.Name)

	list, err := suite.svc.Investor.ListInvestors(ctx, 10, 0)
	suite.Require().NoError(err)
	suite.Len(list, 1)

	suite.Require().NoError(suite.svc.Investor.DeleteInvestor(ctx, investor.InvestorID))
	_, err = suite.svc.Investor.GetInvestorByID(ctx, investor.InvestorID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.ErrorIs(suite.svc.Investor.DeleteInvestor(ctx, investor.InvestorID), apperrors.ErrNotFound)
}

func (suite *LedgerServicesTestSuite) TestSumByLinkInPeriod_IsHalfOpen() {
	ctx := context.Background()
	_, x, _ := suite.sixtyForty()

	sum, err := suite.svc.Investment.SumByLinkInPeriod(ctx, x.LinkID, domain.Inception, day(11))
	suite.Require().NoError(err)
	suite.True(dec("600").Equal(sum))

	sum, err = suite.svc.Investment.SumByLinkInPeriod(ctx, x.LinkID, day(11), day(30))
	suite.Require().NoError(err)
	suite.True(sum.IsZero())

	_, err = suite.svc.Investment.SumByLinkInPeriod(ctx, x.LinkID, day(30), day(11))
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Investment.SumByLinkInPeriod(ctx, "missing", domain.Inception, day(30))
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServicesTestSuite) TestCloseSettlement_KeepsReplacedShareForEarlierPeriods() {
	ctx := context.Background()
	shop := suite.newShop("Year end")
	x := suite.addLink(shop.ShopID, suite.newInvestor("X").InvestorID, "50", domain.Inception)
	w := suite.addLink(shop.ShopID, suite.newInvestor("W").InvestorID, "50", domain.Inception)
	suite.record(x.LinkID, "500", day(5))
	suite.record(w.LinkID, "500", day(6))

	// The share changes after the year ends but before the year is closed.
	x2, err := suite.svc.Ownership.ChangeShare(ctx, x.LinkID, dec("40"), day(380))
	suite.Require().NoError(err)
	old, err := suite.svc.Ownership.GetLink(ctx, x.LinkID)
	suite.Require().NoError(err)
	suite.Require().NotNil(old.EndedDate)
	suite.True(day(380).Equal(*old.EndedDate))

	year, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(365), false, "")
	suite.Require().NoError(err)
	suite.True(dec("1000").Equal(year.TotalInvested))
	suite.Require().Len(year.Entries, 2)
	ex := entryFor(year, x.InvestorID)
	suite.Require().NotNil(ex)
	suite.True(dec("500").Equal(ex.FairShareAmount))
	suite.True(dec("500").Equal(ex.ActualPaidAmount))
	suite.True(ex.BalanceAmount.IsZero())

	suite.record(x2.LinkID, "90", day(390))
	suite.record(w.LinkID, "90", day(391))
	next, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, day(365), day(400), false, "")
	suite.Require().NoError(err)
	suite.Require().Len(next.Entries, 2)
	ex = entryFor(next, x.InvestorID)
	suite.Require().NotNil(ex)
	suite.True(dec("80").Equal(ex.FairShareAmount), "the new 40 share applies after the change")
	suite.True(dec("-10").Equal(ex.BalanceAmount))
}

func (suite *LedgerServicesTestSuite) TestCloseSettlement_UsesStoredMillisecondPrecision() {
	ctx := context.Background()
	shop, x, _ := suite.sixtyForty()

	first, err := suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(30).Add(1500*time.Microsecond), true, "")
	suite.Require().NoError(err)
	suite.True(day(30).Add(time.Millisecond).Equal(first.SettlementDate))

	stored, err := suite.svc.Settlement.GetSettlement(ctx, first.SettlementID)
	suite.Require().NoError(err)
	suite.True(stored.SettlementDate.Equal(first.SettlementDate))

	_, err = suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, first.SettlementDate, day(60), false, "")
	suite.Require().NoError(err, "the returned settlement date starts the next period")

	ex := entryFor(first, x.InvestorID)
	suite.Require().NotNil(ex)
	paid, err := suite.svc.Settlement.RecordSettlementPayment(ctx, ex.EntryID, dec("10"), day(40).Add(700*time.Microsecond))
	suite.Require().NoError(err)
	suite.Require().NotNil(paid.SettlementPaidDate)
	suite.True(day(40).Equal(*paid.SettlementPaidDate))

	other := suite.newShop("Sub-millisecond")
	suite.addLink(other.ShopID, suite.newInvestor("Z").InvestorID, "100", domain.Inception)
	_, err = suite.svc.Settlement.CloseSettlement(ctx, other.ShopID, domain.Inception, domain.Inception.Add(500*time.Microsecond), false, "")
	suite.ErrorIs(err, apperrors.ErrInvalidPeriod)
}

func (suite *LedgerServicesTestSuite) TestRecord_RejectsDatesNoSettlementWouldCount() {
	ctx := context.Background()
	shop := suite.newShop("Late entries")
	link := suite.addLink(shop.ShopID, suite.newInvestor("X").InvestorID, "100", day(5))

	_, err := suite.svc.Investment.Record(ctx, link.LinkID, dec("10"), day(4), "round 1", "")
	suite.ErrorIs(err, apperrors.ErrValidation, "before the link joined")

	suite.record(link.LinkID, "10", day(5))
	_, err = suite.svc.Settlement.CloseSettlement(ctx, shop.ShopID, domain.Inception, day(30), false, "")
	suite.Require().NoError(err)

	_, err = suite.svc.Investment.Record(ctx, link.LinkID, dec("10"), day(20), "round 1", "")
	suite.ErrorIs(err, apperrors.ErrValidation, "inside a settled period")

	txn, err := suite.svc.Investment.Record(ctx, link.LinkID, dec("10"), day(30).Add(200*time.Microsecond), "round 2", "")
	suite.Require().NoError(err)
	suite.True(day(30).Equal(txn.TransactionDate))
}
