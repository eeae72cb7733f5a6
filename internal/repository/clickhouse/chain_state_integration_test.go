package clickhouse

import (
	"time"

	"github.com/golang/mock/gomock"
	"github.com/yangcoin/bitcore-node/internal/model"
)

func (s *RepositorySuite) TestLoadChainStateMissing() {
	s.metrics.EXPECT().Observe("load_chain_state", model.Regtest, gomock.Nil(), gomock.Any()).Times(1)

	state, err := s.repo.LoadChainState(s.testCtx, model.Regtest)
	s.Require().NoError(err)
	s.Nil(state)
}

func (s *RepositorySuite) TestSaveChainStateLatestWins() {
	s.metrics.EXPECT().Observe("save_chain_state", model.Regtest, gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("load_chain_state", model.Regtest, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.SaveChainState(s.testCtx, model.Regtest, []byte(`{"tip":"old"}`)))

	time.Sleep(10 * time.Millisecond)

	s.Require().NoError(s.repo.SaveChainState(s.testCtx, model.Regtest, []byte(`{"tip":"new"}`)))

	state, err := s.repo.LoadChainState(s.testCtx, model.Regtest)
	s.Require().NoError(err)
	s.Equal(`{"tip":"new"}`, string(state))
}

func (s *RepositorySuite) TestChainStateIsolatedByNetwork() {
	s.metrics.EXPECT().Observe("save_chain_state", model.Regtest, gomock.Nil(), gomock.Any()).Times(1)
	s.metrics.EXPECT().Observe("load_chain_state", model.Testnet, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.SaveChainState(s.testCtx, model.Regtest, []byte(`{}`)))

	state, err := s.repo.LoadChainState(s.testCtx, model.Testnet)
	s.Require().NoError(err)
	s.Nil(state)
}
