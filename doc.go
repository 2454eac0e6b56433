// Installer for the DirO (Directory Organizer) desktop application.
//
// The installer expects the prebuilt DirO binary and its icon next to the installer
// executable. It moves both into ~/DirO, writes an application menu entry and a desktop
// shortcut, and asks the desktop to refresh its launcher and icon caches.
//
// Names, paths and the refresh commands are read from resources/config.yml, and all
// user-facing messages from resources/languages, both bundled with go.rice.
package diro_installer
