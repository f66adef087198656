package puzzle

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/phanxgames/bramble"
)

// Frame counts of the timed phases.
const (
	IntroFrames  = 60
	SwapFrames   = 6
	FallFrames   = 4
	FlashFrames  = 30
	PopInterval  = 8
	PopFrames    = 12
	SquishFrames = 4
	WinFrames    = 90
)

// BannerMillis is how long announcements stay on screen.
const BannerMillis = 3000

// frameMillis converts frame counts to tween durations at the default rate.
const frameMillis = 1000.0 / bramble.DefaultFPS

// Board placement on the 128x128 display.
const (
	boardX = (bramble.DisplaySize - Cols*BlockSize) / 2
	boardY = bramble.DisplaySize - Rows*BlockSize - 8
)

// textCols fits a 6 pixel font with letter spacing across the display.
const textCols = 18

const (
	layerFrame  = 1
	layerBlocks = 2
	layerCursor = 3
	layerText   = 10
	layerBanner = 20
)

// Config wires a Game. Scene is required; every other field has a default.
type Config struct {
	Scene  *bramble.Scene
	Input  *bramble.Input
	Stages fs.FS // stage files named by Modes
	Modes  []Mode
	Save   SaveData         // nil keeps progress in memory
	Font   *bramble.Font    // nil disables text
	Blocks *bramble.Texture // nil selects DefaultBlockSheet
	Audio  AudioPlayer
	Events EventSink
}

// Game is the match-3 controller. It is a bramble.Ticker; add it to a
// Runtime with AddLogic so it runs after the scene's tweens each frame.
type Game struct {
	scene    *bramble.Scene
	input    *bramble.Input
	stages   fs.FS
	save     SaveData
	progress *Progress
	font     *bramble.Font
	sheet    *bramble.Texture
	audio    AudioPlayer
	events   EventSink

	fsm   *Machine
	board Board

	mode, stageIdx, level int
	stage                 *Stage
	stageCache            map[string]*Stage
	afterUnload           State
	newClear              bool

	cursorCol, cursorRow int
	popLevel             int
	matched              []Cell
	falling              []Cell
	moving               []*bramble.Tween

	frame       *bramble.Node
	cursor      *bramble.Node
	cursorPulse *bramble.Tween
	menu        *bramble.Node
	hud         *bramble.Node
	banner      *bramble.Node
	bannerDelay *bramble.Delay
}

// NewGame creates a game in StateIntro.
func NewGame(cfg Config) *Game {
	if cfg.Scene == nil {
		panic("puzzle: NewGame requires a scene")
	}
	g := &Game{
		scene:      cfg.Scene,
		input:      cfg.Input,
		stages:     cfg.Stages,
		save:       cfg.Save,
		font:       cfg.Font,
		sheet:      cfg.Blocks,
		audio:      cfg.Audio,
		events:     cfg.Events,
		fsm:        NewMachine(StateIntro),
		stageCache: make(map[string]*Stage),
		level:      -1,
	}
	if g.input == nil {
		g.input = bramble.NewInput(nil)
	}
	if g.save == nil {
		g.save = bramble.NewMemorySaveStore()
	}
	if g.sheet == nil {
		g.sheet = DefaultBlockSheet()
	}
	g.progress = NewProgress(cfg.Modes, g.save)
	g.buildScene()
	return g
}

func (g *Game) buildScene() {
	s := g.scene

	g.frame = s.NewRectangle("board_frame", Cols*BlockSize+2, Rows*BlockSize+2, bramble.ColorDarkGrey, true)
	g.frame.SetXY(boardX+Cols*BlockSize/2, boardY+Rows*BlockSize/2)
	g.frame.SetLayer(layerFrame)
	g.frame.SetOpacity(0)

	g.cursor = s.NewRectangle("cursor", 2*BlockSize, BlockSize, bramble.ColorWhite, true)
	g.cursor.SetLayer(layerCursor)
	g.cursor.SetOpacity(0)
	g.cursorPulse = s.NewTween(g.cursor)
	g.cursorPulse.SetLoop(bramble.LoopPingPong)

	g.bannerDelay = s.NewDelay(nil)

	if g.font == nil {
		return
	}
	g.menu = s.NewText("menu", g.font, textCols, 8)
	g.menu.SetXY(bramble.DisplaySize/2, bramble.DisplaySize/2)
	g.menu.SetLayer(layerText)
	g.menu.SetOpacity(0)

	g.hud = s.NewText("hud", g.font, textCols, 1)
	g.hud.SetXY(bramble.DisplaySize/2, 8)
	g.hud.SetLayer(layerText)
	g.hud.SetOpacity(0)

	g.banner = s.NewText("banner", g.font, textCols, 1)
	g.banner.SetXY(bramble.DisplaySize/2, bramble.DisplaySize/2)
	g.banner.SetLayer(layerBanner)
	g.banner.SetColor(bramble.ColorYellow)
	g.banner.SetOpacity(0)
}

// --- Accessors ---

// State returns the current state.
func (g *Game) State() State { return g.fsm.State() }

// Board returns the live board.
func (g *Game) Board() *Board { return &g.board }

// Progress returns the clear and unlock bookkeeping.
func (g *Game) Progress() *Progress { return g.progress }

// Stage returns the selected stage, or nil if none is loaded.
func (g *Game) Stage() *Stage { return g.stage }

// Selection returns the selected mode, stage index and level index.
func (g *Game) Selection() (mode, stage, level int) { return g.mode, g.stageIdx, g.level }

// Cursor returns the left cell of the swap cursor.
func (g *Game) Cursor() (col, row int) { return g.cursorCol, g.cursorRow }

// SetCursor moves the swap cursor, clamped to the board.
func (g *Game) SetCursor(col, row int) {
	g.cursorCol = min(max(col, 0), Cols-2)
	g.cursorRow = min(max(row, 0), Rows-1)
	g.cursor.SetXY(float64(boardX+g.cursorCol*BlockSize+BlockSize), float64(boardY+g.cursorRow*BlockSize+BlockSize/2))
}

// PopLevel returns the number of pops since the last swap.
func (g *Game) PopLevel() int { return g.popLevel }

// LoadLevel jumps straight to level of stage in mode. A level already on
// the board is unloaded first.
func (g *Game) LoadLevel(mode, stage, level int) {
	g.mode, g.stageIdx, g.level = mode, stage, level
	g.stage = nil
	if g.board.Empty() {
		g.fsm.Transition(StateLevelLoading)
		return
	}
	g.afterUnload = StateLevelLoading
	g.fsm.Transition(StateLevelUnloading)
}

// Tick advances the game by one frame.
func (g *Game) Tick(dt float64) {
	changed := g.fsm.Pending()
	g.fsm.Update(g.handle)
	if changed {
		g.publish(Event{Kind: EventStateChanged, State: g.fsm.State()})
	}
	g.tickBlocks()
}

func (g *Game) handle(s State) {
	switch s {
	case StateIntro:
		g.intro()
	case StatePressStart:
		g.pressStart()
	case StateModeSelect:
		g.modeSelect()
	case StateStageSelect:
		g.stageSelect()
	case StateLevelLoading:
		g.levelLoading()
	case StateCursorSelect:
		g.cursorSelect()
	case StateSwapAnim:
		g.swapAnim()
	case StateFallAnim:
		g.fallAnim()
	case StateMatchAnim:
		g.matchAnim()
	case StateMoveOver:
		g.moveOver()
	case StateLevelWin:
		g.levelWin()
	case StateLevelLost:
		g.levelLost()
	case StateLevelUnloading:
		g.levelUnloading()
	}
}

// --- Menus ---

func (g *Game) intro() {
	m := g.fsm
	if m.Leaving() {
		g.hide(g.menu)
		return
	}
	if m.Entering() {
		g.show(g.menu, "BRAMBLE\n\nPUZZLE ATTACK")
	}
	if m.Frame() >= IntroFrames || g.pressed(bramble.ButtonA) || g.pressed(bramble.ButtonMenu) {
		m.Transition(StatePressStart)
	}
}

func (g *Game) pressStart() {
	m := g.fsm
	if m.Leaving() {
		g.hide(g.menu)
		return
	}
	if m.Entering() {
		g.show(g.menu, "PUZZLE ATTACK\n\n\nPRESS START")
	}
	if g.menu != nil {
		// blink twice a second
		if (m.Frame()/15)%2 == 0 {
			g.menu.SetOpacity(1)
		} else {
			g.menu.SetOpacity(0.5)
		}
	}
	if g.pressed(bramble.ButtonA) || g.pressed(bramble.ButtonMenu) {
		g.play(EffectSelect, 0)
		m.Transition(StateModeSelect)
	}
}

func (g *Game) modeSelect() {
	m := g.fsm
	if m.Leaving() {
		g.hide(g.menu)
		return
	}
	modes := g.progress.Modes()
	if m.Entering() {
		if len(modes) == 0 {
			g.announce("NO LEVELS")
		}
		g.mode = min(max(g.mode, 0), max(len(modes)-1, 0))
		g.drawModeMenu()
	}
	switch {
	case g.pressed(bramble.ButtonB):
		g.play(EffectCancel, 0)
		m.Transition(StatePressStart)
	case len(modes) == 0:
	case g.pressed(bramble.ButtonUp):
		g.mode = (g.mode + len(modes) - 1) % len(modes)
		g.play(EffectMove, 0)
		g.drawModeMenu()
	case g.pressed(bramble.ButtonDown):
		g.mode = (g.mode + 1) % len(modes)
		g.play(EffectMove, 0)
		g.drawModeMenu()
	case g.pressed(bramble.ButtonA):
		if !g.progress.Unlocked(g.mode) || len(modes[g.mode].Stages) == 0 {
			g.play(EffectCancel, 0)
			g.announce("LOCKED")
			return
		}
		g.play(EffectSelect, 0)
		if g.stageIdx >= len(modes[g.mode].Stages) {
			g.stageIdx = 0
		}
		m.Transition(StateStageSelect)
	}
}

func (g *Game) drawModeMenu() {
	var b strings.Builder
	b.WriteString("SELECT MODE\n\n")
	for i, md := range g.progress.Modes() {
		marker := "  "
		if i == g.mode {
			marker = "> "
		}
		b.WriteString(marker + strings.ToUpper(md.Name))
		if !g.progress.Unlocked(i) {
			b.WriteString(" LOCKED")
		}
		b.WriteByte('\n')
	}
	g.show(g.menu, b.String())
}

func (g *Game) stageSelect() {
	m := g.fsm
	if m.Leaving() {
		g.hide(g.menu)
		return
	}
	stages := g.modeStages()
	if m.Entering() {
		if g.stage == nil || g.stage.ID != StageID(g.stageName()) {
			g.selectStage()
		}
		g.drawStageMenu()
	}
	switch {
	case g.pressed(bramble.ButtonB):
		g.play(EffectCancel, 0)
		m.Transition(StateModeSelect)
	case len(stages) == 0:
	case g.pressed(bramble.ButtonUp):
		g.stageIdx = (g.stageIdx + len(stages) - 1) % len(stages)
		g.play(EffectMove, 0)
		g.selectStage()
		g.drawStageMenu()
	case g.pressed(bramble.ButtonDown):
		g.stageIdx = (g.stageIdx + 1) % len(stages)
		g.play(EffectMove, 0)
		g.selectStage()
		g.drawStageMenu()
	case g.stage == nil:
	case g.pressed(bramble.ButtonLeft):
		n := len(g.stage.Levels)
		g.level = (g.level + n - 1) % n
		g.play(EffectMove, 0)
		g.drawStageMenu()
	case g.pressed(bramble.ButtonRight):
		g.level = (g.level + 1) % len(g.stage.Levels)
		g.play(EffectMove, 0)
		g.drawStageMenu()
	case g.pressed(bramble.ButtonA):
		g.play(EffectSelect, 0)
		m.Transition(StateLevelLoading)
	}
}

func (g *Game) drawStageMenu() {
	if g.stage == nil {
		g.show(g.menu, "SELECT STAGE\n\n"+strings.ToUpper(g.stageName())+"\n\nUNAVAILABLE")
		return
	}
	status := ""
	if g.progress.Cleared(g.stage, g.level) {
		status = "CLEAR"
	}
	g.show(g.menu, fmt.Sprintf("SELECT STAGE\n\n%s\n\n< %s >\n%s",
		strings.ToUpper(g.stage.Name), g.stage.Label(g.level), status))
}

func (g *Game) modeStages() []string {
	modes := g.progress.Modes()
	if g.mode < 0 || g.mode >= len(modes) {
		return nil
	}
	return modes[g.mode].Stages
}

func (g *Game) stageName() string {
	stages := g.modeStages()
	if g.stageIdx < 0 || g.stageIdx >= len(stages) {
		return ""
	}
	return stages[g.stageIdx]
}

// selectStage loads the selected stage and picks its first uncleared level.
// Failures are announced and leave no stage selected.
func (g *Game) selectStage() {
	st, err := g.loadStage(g.stageName())
	if err != nil {
		g.fail(err)
		g.stage = nil
		return
	}
	g.stage = st
	g.level = g.progress.FirstUncleared(st)
}

func (g *Game) loadStage(name string) (*Stage, error) {
	if name == "" {
		return nil, fmt.Errorf("puzzle: no stage selected")
	}
	if st, ok := g.stageCache[name]; ok {
		return st, nil
	}
	if g.stages == nil {
		return nil, fmt.Errorf("puzzle: load stage %s: %w", name, fs.ErrNotExist)
	}
	st, err := LoadStage(g.stages, name)
	if err != nil {
		return nil, err
	}
	g.stageCache[name] = st
	return st, nil
}

// --- Play ---

func (g *Game) levelLoading() {
	m := g.fsm
	if m.Leaving() || !m.Entering() {
		return
	}
	if g.stage == nil {
		st, err := g.loadStage(g.stageName())
		if err != nil {
			g.fail(err)
			m.Transition(StateStageSelect)
			return
		}
		g.stage = st
	}
	if g.level < 0 || g.level >= len(g.stage.Levels) {
		g.level = g.progress.FirstUncleared(g.stage)
	}
	if err := g.board.Load(g.stage, g.level, g.spawnBlock); err != nil {
		g.fail(err)
		m.Transition(StateStageSelect)
		return
	}
	g.popLevel = 0
	g.frame.SetOpacity(1)
	g.SetCursor(Cols/2-1, Rows-1)
	g.publish(Event{Kind: EventLevelLoaded, Stage: g.stage.ID, Level: g.level, Count: g.board.Moves})
	m.Transition(StateCursorSelect)
}

func (g *Game) spawnBlock(col, row int, c Color) *Block {
	n := g.scene.NewSprite("block", g.sheet, animFrames, int(ColorCount))
	n.SetPlaying(false)
	n.SetFrameY(int(c))
	n.SetTransparent(bramble.ColorBlack)
	n.SetLayer(layerBlocks)
	n.SetXY(cellCenter(col, row))
	return &Block{Color: c, Node: n}
}

func cellCenter(col, row int) (x, y float64) {
	return float64(boardX + col*BlockSize + BlockSize/2), float64(boardY + row*BlockSize + BlockSize/2)
}

func (g *Game) cursorSelect() {
	m := g.fsm
	if m.Leaving() {
		g.cursorPulse.Pause()
		g.cursor.SetOpacity(0)
		return
	}
	if m.Entering() {
		g.cursor.SetOpacity(1)
		g.cursorPulse.StartScalar(bramble.TargetFunc(func(v bramble.Vec2) { g.cursor.SetOpacity(v.X) }),
			1, 0.4, 400, bramble.EaseSineInOut)
		g.drawHUD()
	}
	col, row := g.cursorCol, g.cursorRow
	switch {
	case g.pressed(bramble.ButtonLeft):
		col--
	case g.pressed(bramble.ButtonRight):
		col++
	case g.pressed(bramble.ButtonUp):
		row--
	case g.pressed(bramble.ButtonDown):
		row++
	case g.pressed(bramble.ButtonA):
		g.board.Swap(g.cursorCol, g.cursorRow)
		g.popLevel = 0
		g.play(EffectSwap, 0)
		g.publish(Event{Kind: EventSwap, Stage: g.stage.ID, Level: g.level, Count: g.board.Moves})
		g.drawHUD()
		m.Transition(StateSwapAnim)
		return
	case g.pressed(bramble.ButtonB):
		g.play(EffectCancel, 0)
		g.afterUnload = StateStageSelect
		m.Transition(StateLevelUnloading)
		return
	}
	if col != g.cursorCol || row != g.cursorRow {
		g.SetCursor(col, row)
		g.play(EffectMove, 0)
	}
}

func (g *Game) drawHUD() {
	if g.stage == nil {
		return
	}
	g.show(g.hud, fmt.Sprintf("%s  MOVES %d", g.stage.Label(g.level), max(g.board.Moves, 0)))
}

func (g *Game) swapAnim() {
	m := g.fsm
	if m.Leaving() {
		g.settle()
		return
	}
	if m.Entering() {
		for _, col := range []int{g.cursorCol, g.cursorCol + 1} {
			if blk := g.board.At(col, g.cursorRow); blk != nil {
				g.moveBlock(blk, col, g.cursorRow, SwapFrames)
			}
		}
	}
	if m.Frame() >= SwapFrames {
		m.Transition(StateFallAnim)
	}
}

func (g *Game) fallAnim() {
	m := g.fsm
	if m.Leaving() {
		g.settle()
		still := g.board.CheckFalling()
		for _, c := range g.falling {
			if !containsBlock(still, c.Block) {
				c.Block.SetAnim(AnimSquish)
			}
		}
		g.falling = nil
		return
	}
	if m.Entering() {
		g.falling = g.board.CheckFalling()
		if len(g.falling) == 0 {
			m.Transition(StateMatchAnim)
			return
		}
		g.board.Fall(g.falling)
		for _, c := range g.falling {
			c.Block.SetAnim(AnimFalling)
			g.moveBlock(c.Block, c.Col, c.Row+1, FallFrames)
		}
	}
	if m.Frame() >= FallFrames {
		m.Transition(StateFallAnim)
	}
}

func (g *Game) matchAnim() {
	m := g.fsm
	if m.Leaving() {
		for _, c := range g.matched {
			g.removeBlock(c)
		}
		g.matched = nil
		return
	}
	if m.Entering() {
		g.matched = g.board.CheckMatching()
		if len(g.matched) == 0 {
			m.Transition(StateMoveOver)
			return
		}
		g.publish(Event{Kind: EventMatch, Stage: g.stage.ID, Level: g.level, Count: len(g.matched)})
	}

	f := m.Frame()
	if f < FlashFrames {
		anim := AnimIdle
		if f%2 == 0 {
			anim = AnimFlash
		}
		for _, c := range g.matched {
			c.Block.SetAnim(anim)
		}
		return
	}

	p := f - FlashFrames
	for i, c := range g.matched {
		switch p - i*PopInterval {
		case 0:
			c.Block.SetAnim(AnimPop)
			g.play(EffectPop, min(g.popLevel, PopLevels-1))
			g.publish(Event{Kind: EventPop, Stage: g.stage.ID, Level: g.level, Count: g.popLevel})
			g.popLevel++
		case PopFrames:
			g.removeBlock(c)
		}
	}
	if p >= (len(g.matched)-1)*PopInterval+PopFrames {
		m.Transition(StateFallAnim)
	}
}

// removeBlock clears c from the board and destroys its sprite, if the block
// is still there.
func (g *Game) removeBlock(c Cell) {
	if g.board.At(c.Col, c.Row) != c.Block {
		return
	}
	g.board.Set(c.Col, c.Row, nil)
	if c.Block.Node != nil {
		g.scene.Destroy(c.Block.Node)
	}
}

func (g *Game) moveOver() {
	m := g.fsm
	if m.Leaving() || !m.Entering() {
		return
	}
	switch {
	case g.board.Empty():
		m.Transition(StateLevelWin)
	case g.board.Moves <= 0:
		m.Transition(StateLevelLost)
	default:
		m.Transition(StateCursorSelect)
	}
}

func (g *Game) levelWin() {
	m := g.fsm
	if m.Leaving() {
		g.hideBanner()
		g.input.Rumble(0)
		return
	}
	if m.Entering() {
		newClear, err := g.progress.MarkCleared(g.stage, g.level)
		if err != nil {
			log.Printf("puzzle: record clear: %v", err)
		}
		g.newClear = newClear
		g.flushSave()
		g.showBanner("CLEAR!", 0)
		g.play(EffectWin, 0)
		g.input.Rumble(0.5)
		g.publish(Event{Kind: EventLevelWin, Stage: g.stage.ID, Level: g.level, Count: g.board.Moves})
	}
	if m.Frame() < WinFrames {
		return
	}

	g.afterUnload = StateLevelLoading
	if !g.newClear || !g.progress.StageComplete(g.stage) {
		g.level = g.progress.NextLevel(g.stage, g.level)
		m.Transition(StateLevelUnloading)
		return
	}

	g.publish(Event{Kind: EventStageCleared, Stage: g.stage.ID, Level: g.level})
	if g.progress.ModeComplete(g.mode) && g.mode+1 < len(g.progress.Modes()) {
		g.publish(Event{Kind: EventModeUnlocked, Level: g.mode + 1})
	}
	if mode, stage, ok := g.progress.NextStage(g.mode, g.stageIdx); ok {
		g.mode, g.stageIdx, g.level = mode, stage, -1
		g.stage = nil
	} else {
		g.afterUnload = StateStageSelect
	}
	m.Transition(StateLevelUnloading)
}

func (g *Game) levelLost() {
	m := g.fsm
	if m.Leaving() {
		g.hideBanner()
		g.input.Rumble(0)
		return
	}
	if m.Entering() {
		g.showBanner("OUT OF MOVES", 0)
		g.play(EffectLose, 0)
		g.input.Rumble(1)
		g.publish(Event{Kind: EventLevelLost, Stage: g.stage.ID, Level: g.level})
	}
	switch {
	case g.pressed(bramble.ButtonA):
		g.afterUnload = StateLevelLoading
		m.Transition(StateLevelUnloading)
	case g.pressed(bramble.ButtonB):
		g.afterUnload = StateStageSelect
		m.Transition(StateLevelUnloading)
	}
}

func (g *Game) levelUnloading() {
	m := g.fsm
	if m.Leaving() || !m.Entering() {
		return
	}
	g.settle()
	for _, c := range g.board.Blocks() {
		if c.Block.Node != nil {
			g.scene.Destroy(c.Block.Node)
		}
	}
	g.board.Clear()
	g.matched, g.falling = nil, nil
	g.frame.SetOpacity(0)
	g.hide(g.hud)
	m.Transition(g.afterUnload)
}

// --- Block animation ---

// moveBlock tweens blk's sprite to the center of (col, row).
func (g *Game) moveBlock(blk *Block, col, row, frames int) {
	if blk.Node == nil {
		return
	}
	x, y := cellCenter(col, row)
	g.moving = append(g.moving, g.scene.TweenPosition(blk.Node, bramble.Vec2{X: x, Y: y}, float64(frames)*frameMillis, bramble.EaseQuadOut))
}

// settle snaps every moving block to its destination.
func (g *Game) settle() {
	for _, tw := range g.moving {
		tw.End()
		tw.Destroy()
	}
	g.moving = g.moving[:0]
}

// tickBlocks expires cosmetic squish frames.
func (g *Game) tickBlocks() {
	for _, c := range g.board.Blocks() {
		blk := c.Block
		if blk.Anim != AnimSquish {
			continue
		}
		blk.animAge++
		if blk.animAge >= SquishFrames {
			blk.SetAnim(AnimIdle)
		}
	}
}

func containsBlock(cells []Cell, blk *Block) bool {
	for _, c := range cells {
		if c.Block == blk {
			return true
		}
	}
	return false
}

// --- Feedback ---

func (g *Game) pressed(b bramble.Button) bool {
	return g.input.JustPressed(b)
}

func (g *Game) play(e Effect, level int) {
	if g.audio != nil {
		g.audio.PlayEffect(e, level)
	}
}

func (g *Game) publish(ev Event) {
	if g.events != nil {
		g.events.Publish(ev)
	}
}

func (g *Game) show(n *bramble.Node, text string) {
	if n == nil {
		return
	}
	n.SetText(text)
	n.SetOpacity(1)
}

func (g *Game) hide(n *bramble.Node) {
	if n != nil {
		n.SetOpacity(0)
	}
}

// showBanner displays msg, for ms milliseconds or until hidden when ms is 0.
func (g *Game) showBanner(msg string, ms float64) {
	g.show(g.banner, msg)
	g.bannerDelay.Cancel()
	if ms > 0 {
		g.bannerDelay.Start(ms, g.hideBanner)
	}
}

func (g *Game) hideBanner() {
	g.bannerDelay.Cancel()
	g.hide(g.banner)
}

// announce shows a short user-visible message.
func (g *Game) announce(msg string) {
	g.showBanner(strings.ToUpper(msg), BannerMillis)
}

// fail reports a content error to the player and the log.
func (g *Game) fail(err error) {
	log.Printf("puzzle: %v", err)
	g.publish(Event{Kind: EventError, Msg: err.Error()})
	var le *LevelError
	switch {
	case errors.As(err, &le) && le.Row >= 0:
		g.announce(fmt.Sprintf("BAD LEVEL %d ROW %d", le.Level+1, le.Row+1))
	case errors.Is(err, ErrLevelFormat):
		g.announce("LEVEL ERROR")
	default:
		g.announce("STAGE MISSING")
	}
}

// flushSave writes progress. Failures are logged; play continues.
func (g *Game) flushSave() {
	if err := g.save.Flush(); err != nil {
		log.Printf("puzzle: save progress: %v", err)
	}
}
