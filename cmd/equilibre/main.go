// Package main provides the equilibre CLI: archive/WLD asset decoding and
// the login/world session protocol tools.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pixelbound/equilibre/pkg/archive"
	"github.com/pixelbound/equilibre/pkg/infrastructure/logger"
	"github.com/pixelbound/equilibre/pkg/net/login"
	"github.com/pixelbound/equilibre/pkg/net/message"
	"github.com/pixelbound/equilibre/pkg/net/packetinfo"
	"github.com/pixelbound/equilibre/pkg/wld"
	"github.com/pixelbound/equilibre/pkg/wld/charskin"
	"github.com/pixelbound/equilibre/pkg/wld/fragments"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "archive":
		err = runArchive(os.Args[2:])
	case "wld":
		err = runWld(os.Args[2:])
	case "login":
		err = runLogin(os.Args[2:])
	case "packet-info":
		err = runPacketInfo(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  equilibre archive LIST|EXTRACT <path> [dest]
  equilibre wld dump-fragments <archive> [wld-name]
  equilibre wld dump-skeletons <archive> [wld-name]
  equilibre wld list-characters <archive> [wld-name]
  equilibre login --host H --port P --user U --password W [--dump-packets]
  equilibre packet-info [-c CRC] [-n LM|WM] [-v] [-q] FILES...`)
}

// ---- archive ----

func runArchive(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: archive LIST|EXTRACT <path> [dest]")
	}
	op, path := strings.ToUpper(args[0]), args[1]

	log := logger.NewConsoleLogger(logger.VerbosityInfo)
	a, err := archive.GetArchive(path, log)
	if err != nil {
		return err
	}
	if err := a.Initialize(); err != nil {
		return err
	}

	switch op {
	case "LIST":
		for _, f := range a.GetAllFiles() {
			fmt.Printf("%s\t%d bytes\n", f.GetName(), f.GetSize())
		}
		return nil
	case "EXTRACT":
		dest := "."
		if len(args) > 2 {
			dest = args[2]
		}
		return a.WriteAllFiles(dest)
	default:
		return fmt.Errorf("unknown archive operation %q", op)
	}
}

// ---- wld ----

func runWld(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: wld dump-fragments|dump-skeletons|list-characters <archive> [wld-name]")
	}
	op, archivePath := args[0], args[1]

	wldName := ""
	if len(args) > 2 {
		wldName = args[2]
	} else {
		base := filepath.Base(archivePath)
		wldName = strings.TrimSuffix(base, filepath.Ext(base)) + ".wld"
	}

	log := logger.NewConsoleLogger(logger.VerbosityInfo)
	a, err := archive.GetArchive(archivePath, log)
	if err != nil {
		return err
	}
	if err := a.Initialize(); err != nil {
		return err
	}

	wldFile := a.GetFile(wldName)
	if wldFile == nil {
		return fmt.Errorf("archive does not contain %q", wldName)
	}

	baseWld := wld.NewBaseWldFile(wldFile, strings.TrimSuffix(wldName, ".wld"), wld.WldTypeZone, log, &wld.Settings{}, nil)
	if err := baseWld.Initialize("", false); err != nil {
		return fmt.Errorf("decoding %s: %w", wldName, err)
	}

	switch op {
	case "dump-fragments":
		return dumpFragments(baseWld)
	case "dump-skeletons":
		return dumpSkeletons(baseWld)
	case "list-characters":
		return dumpCharacters(baseWld)
	default:
		return fmt.Errorf("unknown wld operation %q", op)
	}
}

func dumpFragments(w *wld.BaseWldFile) error {
	for i, f := range w.GetFragments() {
		fmt.Printf("%4d  type=0x%02x  name=%q\n", i, f.FragmentType(), f.GetName())
	}
	return nil
}

func dumpSkeletons(w *wld.BaseWldFile) error {
	for _, skel := range wld.GetFragmentsByType[*fragments.SkeletonHierarchy](w) {
		fmt.Printf("%s (%d bones, %d animations)\n", skel.GetName(), len(skel.Skeleton), len(skel.Animations))
		for i := range skel.Skeleton {
			name := skel.BoneMappingClean[i]
			fmt.Printf("  %3d  %s\n", i, name)
		}
		_ = skel
	}
	return nil
}

func dumpCharacters(w *wld.BaseWldFile) error {
	for _, report := range charskin.List(w) {
		fmt.Printf("%s (%d slots, %d skins)\n", report.ActorName, len(report.Slots), report.SkinCount)
		for _, slot := range report.Slots {
			fmt.Printf("+-- %02d -> %s [%s]\n", slot.ID, slot.Piece, strings.Join(slot.Palettes, ", "))
		}
	}
	return nil
}

// ---- login ----

func runLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	host := fs.String("host", "127.0.0.1", "login server host")
	port := fs.Int("port", 5998, "login server port")
	user := fs.String("user", "", "account username")
	password := fs.String("password", "", "account password")
	dumpPackets := fs.Bool("dump-packets", false, "print a notice; no packet dump files are written")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" || *password == "" {
		return fmt.Errorf("login requires --user and --password")
	}

	client := login.New()
	addr := *host + ":" + strconv.Itoa(*port)
	if err := client.Connect(addr); err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer client.Disconnect()

	if *dumpPackets {
		fmt.Println("note: --dump-packets writes no packet dump files; this session is not being captured")
	}

	if err := client.BeginLogin(*user, *password); err != nil {
		return err
	}
	ok, userID, sessionKey, err := client.EndLogin()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("login rejected for user %q", *user)
	}
	fmt.Printf("logged in: user_id=%d session_key=%s\n", userID, sessionKey)

	if err := client.BeginListServers(); err != nil {
		return err
	}
	servers, err := client.EndListServers()
	if err != nil {
		return err
	}
	sort.Slice(servers, func(i, j int) bool { return servers[i].Name < servers[j].Name })
	for _, s := range servers {
		fmt.Printf("%s\t%s\t%d players\n", s.Host, s.Name, s.Players)
	}
	return nil
}

// ---- packet-info ----

func runPacketInfo(args []string) error {
	fs := flag.NewFlagSet("packet-info", flag.ExitOnError)
	crc := fs.Int("c", 0x11223344, "CRC key used to verify packets")
	ns := fs.String("n", "WM", "message namespace (LM or WM)")
	verbose := fs.Bool("v", false, "verbose output")
	quiet := fs.Bool("q", false, "suppress body hex dumps")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("packet-info requires at least one FILE")
	}

	namespace := message.NamespaceWorld
	if strings.EqualFold(*ns, "LM") {
		namespace = message.NamespaceLogin
	}

	insp := packetinfo.New(namespace, uint32(*crc), *verbose, *quiet)
	for _, file := range fs.Args() {
		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Printf("error while reading packet '%s': %v\n", file, err)
			continue
		}
		if *verbose {
			fmt.Printf("Packet '%s' (%d bytes)\n", file, len(data))
		}
		lines, err := insp.Info(data)
		if err != nil {
			fmt.Printf("error while reading packet '%s': %v\n", file, err)
			continue
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	}
	_ = time.Now
	return nil
}
